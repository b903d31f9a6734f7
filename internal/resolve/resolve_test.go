package resolve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(s string) json.RawMessage { return json.RawMessage(s) }

func TestSubaccounts(t *testing.T) {
	p := payload(`{"data":{"users":{"edges":[{"node":{"username":"a"}},{"node":{"username":"b"}}]}}}`)

	res, err := New(false).Subaccounts(p)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, res.Value)
	assert.Nil(t, res.Table)

	res, err = New(true).Subaccounts(p)
	require.NoError(t, err)
	require.NotNil(t, res.Table)
	assert.Equal(t, []string{"subaccounts"}, res.Table.Columns)
	assert.Equal(t, [][]any{{"a"}, {"b"}}, res.Table.Rows)
}

func TestProfileActiveWorkerCount(t *testing.T) {
	p := payload(`{"data":{"getProfileActiveWorkers":7}}`)

	res, err := New(false).ProfileActiveWorkerCount(p)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Value)

	res, err = New(true).ProfileActiveWorkerCount(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"activeWorkers"}, res.Table.Columns)
	assert.Equal(t, [][]any{{int64(7)}}, res.Table.Rows)
}

func TestProfileInactiveWorkerCount(t *testing.T) {
	res, err := New(true).ProfileInactiveWorkerCount(payload(`{"data":{"getProfileInactiveWorkers":0}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"inactiveWorkers"}, res.Table.Columns)
	assert.Equal(t, [][]any{{int64(0)}}, res.Table.Rows)

	_, err = New(false).ProfileInactiveWorkerCount(payload(`{"data":{"getProfileInactiveWorkers":"many"}}`))
	assert.ErrorIs(t, err, ErrShape)

	for _, tabular := range []bool{false, true} {
		_, err = New(tabular).ProfileInactiveWorkerCount(payload(`{"data":{"getProfileInactiveWorkers":null}}`))
		assert.ErrorIs(t, err, ErrShape)
		_, err = New(tabular).ProfileActiveWorkerCount(payload(`{"data":{"getProfileActiveWorkers":null}}`))
		assert.ErrorIs(t, err, ErrShape)
	}
}

func TestHashrateHistories(t *testing.T) {
	subaccount := payload(`{"data":{"getHashrateHistory":{"edges":[
		{"node":{"time":"2023-01-01T00:00:00+00:00","hashrate":"1000"}},
		{"node":{"time":"2023-01-01T01:00:00+00:00","hashrate":"1200"}}
	]}}}`)
	worker := payload(`{"data":{"getWorkerHashrateHistory":{"edges":[
		{"node":{"time":"2023-01-01T00:00:00+00:00","hashrate":"10"}}
	]}}}`)

	res, err := New(false).SubaccountHashrateHistory(subaccount)
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{"2023-01-01T00:00:00+00:00", "1000"},
		[]any{"2023-01-01T01:00:00+00:00", "1200"},
	}, res.Value)

	res, err = New(true).WorkerHashrateHistory(worker)
	require.NoError(t, err)
	assert.Equal(t, "getWorkerHashrateHistory", res.Table.Title)
	assert.Equal(t, []string{"timestamp", "hashrate"}, res.Table.Columns)
	assert.Equal(t, [][]any{{"2023-01-01T00:00:00+00:00", "10"}}, res.Table.Rows)
}

func TestTransactionHistory(t *testing.T) {
	p := payload(`{"data":{"getTransactionHistory":{"edges":[
		{"node":{"createdAt":"2023-01-02","amount":0.0125,"status":"CONFIRMED","transactionId":"0xabc"}}
	]}}}`)

	res, err := New(true).TransactionHistory(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"createdAt", "amount", "status", "Transaction ID"}, res.Table.Columns)
	assert.Equal(t, [][]any{{"2023-01-02", json.Number("0.0125"), "CONFIRMED", "0xabc"}}, res.Table.Rows)

	short := payload(`{"data":{"getTransactionHistory":{"edges":[{"node":{"createdAt":"2023-01-02"}}]}}}`)
	_, err = New(true).TransactionHistory(short)
	assert.ErrorIs(t, err, ErrShape)

	res, err = New(false).TransactionHistory(short)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"2023-01-02"}}, res.Value)
}

const minersPayload = `{"data":{"miners":{"edges":[
	{"node":{"workerName":"rig-1","details1H":{"hashrate":"100","status":"Active","efficiency":99.5}}},
	{"node":{"workerName":"rig-2","details1H":{"hashrate":"0","status":"Inactive","efficiency":0}}}
]}}}`

func TestWorkerDetailsTabular(t *testing.T) {
	res, err := New(true).WorkerDetails(payload(minersPayload))
	require.NoError(t, err)
	assert.Equal(t, []string{"workerNames", "hashrate", "status", "efficiency"}, res.Table.Columns)
	assert.Equal(t, [][]any{
		{"rig-1", "100", "Active", json.Number("99.5")},
		{"rig-2", "0", "Inactive", json.Number("0")},
	}, res.Table.Rows)
}

func TestWorkerDetailsList(t *testing.T) {
	res, err := New(false).WorkerDetails(payload(minersPayload))
	require.NoError(t, err)

	rows, ok := res.Value.([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	first := rows[0].([]any)
	assert.Equal(t, "rig-1", first[0])
	assert.Equal(t, map[string]any{"hashrate": "100", "status": "Active", "efficiency": json.Number("99.5")}, first[1])
}

func TestWorkerDetailsBadShape(t *testing.T) {
	tests := []string{
		`{"data":{"miners":{"edges":[{"node":{"workerName":"rig-1"}}]}}}`,
		`{"data":{"miners":{"edges":[{"node":{"workerName":"rig-1","details1H":null}}]}}}`,
		`{"data":{"miners":{"edges":[{"node":{"workerName":"rig-1","details1H":"n/a"}}]}}}`,
	}
	for _, p := range tests {
		_, err := New(true).WorkerDetails(payload(p))
		assert.ErrorIs(t, err, ErrShape, p)
	}
}

func TestShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"graphql errors only", `{"errors":[{"message":"denied"}]}`},
		{"null data", `{"data":null}`},
		{"null result", `{"data":{"users":null}}`},
		{"no edges", `{"data":{"users":{"nodes":[]}}}`},
		{"null node", `{"data":{"users":{"edges":[{"node":null}]}}}`},
		{"empty node", `{"data":{"users":{"edges":[{"node":{}}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(false).Subaccounts(payload(tt.payload))
			assert.ErrorIs(t, err, ErrShape)
		})
	}
}

func TestEmptyEdges(t *testing.T) {
	res, err := New(false).Subaccounts(payload(`{"data":{"users":{"edges":[]}}}`))
	require.NoError(t, err)
	assert.Equal(t, []any{}, res.Value)
}

func TestFor(t *testing.T) {
	r := New(false)
	for _, cmd := range []string{
		"get-subaccounts",
		"get-subaccount-hashrate-history",
		"get-worker-details-1h",
		"get-worker-details-24h",
		"get-worker-hashrate-history",
		"get-profile-active-worker-count",
		"get-profile-inactive-worker-count",
		"get-transaction-history",
	} {
		fn, ok := r.For(cmd)
		assert.True(t, ok, cmd)
		assert.NotNil(t, fn, cmd)
	}

	_, ok := r.For("get-revenue-ph")
	assert.False(t, ok)

	fn, _ := r.For("get-profile-active-worker-count")
	res, err := fn(payload(`{"data":{"getProfileActiveWorkers":3}}`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Value)
}
