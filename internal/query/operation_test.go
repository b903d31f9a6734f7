package query

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func TestCatalogNames(t *testing.T) {
	want := []string{
		"create-custom-request",
		"get-all-transaction-history",
		"get-hashrate-score-history",
		"get-pool-hashrate",
		"get-profile-active-worker-count",
		"get-profile-inactive-worker-count",
		"get-revenue",
		"get-revenue-ph",
		"get-subaccount-hashrate-history",
		"get-subaccount-mining-summary",
		"get-subaccount-workers-status",
		"get-subaccounts",
		"get-transaction-history",
		"get-worker-details",
		"get-worker-details-1h",
		"get-worker-details-24h",
		"get-worker-hashrate-history",
	}

	var got []string
	for _, op := range Operations() {
		got = append(got, op.Name)
	}
	assert.Equal(t, want, got)
}

func TestCatalogDocumentsParse(t *testing.T) {
	for _, op := range Operations() {
		if op.Document == "" {
			continue
		}
		t.Run(op.Name, func(t *testing.T) {
			doc, err := parser.ParseQuery(&ast.Source{Input: op.Document})
			require.Nil(t, err)
			require.Len(t, doc.Operations, 1)

			field, err := ResultField(op.Document)
			require.NoError(t, err)
			assert.Equal(t, op.Field, field, "result field must match the document's top-level field")

			// every declared variable must be bound
			values := sampleValues(op)
			call, err := op.Build(values)
			require.NoError(t, err)
			for _, def := range doc.Operations[0].VariableDefinitions {
				assert.Contains(t, call.Request.Variables, def.Variable, "variable $%s is not bound", def.Variable)
			}
			assert.Len(t, call.Request.Variables, len(doc.Operations[0].VariableDefinitions))
		})
	}
}

func sampleValues(op *Operation) Values {
	values := Values{}
	for _, a := range op.Args {
		switch a.Kind {
		case KindInt:
			values[a.Name] = 10
		case KindJSON:
			values[a.Name] = map[string]any{"days": float64(1)}
		default:
			values[a.Name] = "x"
		}
	}
	return values
}

func TestBuildBindings(t *testing.T) {
	tests := []struct {
		name       string
		positional []string
		options    map[string]string
		wantField  string
		wantVars   map[string]any
	}{
		{
			name:       "get-subaccounts",
			positional: []string{"10"},
			wantField:  "users",
			wantVars:   map[string]any{"first": 10, "offset": 0},
		},
		{
			name:       "get-subaccounts",
			positional: []string{"5"},
			options:    map[string]string{"offset": "20"},
			wantField:  "users",
			wantVars:   map[string]any{"first": 5, "offset": 20},
		},
		{
			name:       "get-all-transaction-history",
			positional: []string{"BTC", "gp", "3"},
			wantField:  "getAllTransactionHistory",
			wantVars:   map[string]any{"cid": "BTC", "uname": "gp", "first": 3},
		},
		{
			name:       "get-worker-details",
			positional: []string{"gp", "BTC", "60", "25"},
			wantField:  "getWorkerDetails",
			wantVars: map[string]any{
				"duration": map[string]any{"minutes": 60},
				"mpn":      "BTC",
				"uname":    "gp",
				"first":    25,
			},
		},
		{
			name:       "get-revenue",
			positional: []string{"gp", "BTC", `{"days": 1}`, `{"days": 0}`},
			wantField:  "getRevenue",
			wantVars: map[string]any{
				"uname":         "gp",
				"cid":           "BTC",
				"startInterval": map[string]any{"days": float64(1)},
				"endInterval":   map[string]any{"days": float64(0)},
			},
		},
		{
			name:       "get-worker-hashrate-history",
			positional: []string{"gp", "rig-7", "BTC", "_1_HOUR", "_1_DAY", "24"},
			wantField:  "getWorkerHashrateHistory",
			wantVars: map[string]any{
				"inputUsername": "gp",
				"workerName":    "rig-7",
				"mpn":           "BTC",
				"inputBucket":   "_1_HOUR",
				"inputDuration": "_1_DAY",
				"first":         24,
			},
		},
		{
			name:       "get-pool-hashrate",
			positional: []string{"BTC", "luxor"},
			wantField:  "getPoolHashrate",
			wantVars:   map[string]any{"mpn": "BTC", "orgSlug": "luxor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Lookup(tt.name)
			require.NoError(t, err)

			values, err := op.Parse(tt.positional, tt.options)
			require.NoError(t, err)

			call, err := op.Build(values)
			require.NoError(t, err)
			assert.Equal(t, tt.name, call.Operation)
			assert.Equal(t, tt.wantField, call.Field)
			assert.Equal(t, op.Document, call.Request.Query)
			assert.Equal(t, tt.wantVars, call.Request.Variables)
		})
	}
}

func TestParseErrors(t *testing.T) {
	op, err := Lookup("get-worker-details")
	require.NoError(t, err)

	tests := []struct {
		name       string
		positional []string
		options    map[string]string
	}{
		{"too few", []string{"gp", "BTC"}, nil},
		{"too many", []string{"gp", "BTC", "60", "10", "extra"}, nil},
		{"bad int", []string{"gp", "BTC", "sixty", "10"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := op.Parse(tt.positional, tt.options)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	rev, err := Lookup("get-revenue")
	require.NoError(t, err)
	_, err = rev.Parse([]string{"gp", "BTC", "{days: 1}", "{}"}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	subs, err := Lookup("get-subaccounts")
	require.NoError(t, err)
	_, err = subs.Parse([]string{"1"}, map[string]string{"offset": "x"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuildMissingValue(t *testing.T) {
	op, err := Lookup("get-revenue-ph")
	require.NoError(t, err)

	_, err = op.Build(Values{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("get-everything")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestPositionalAndOptions(t *testing.T) {
	op, err := Lookup("get-subaccounts")
	require.NoError(t, err)

	require.Len(t, op.Positional(), 1)
	assert.Equal(t, "first", op.Positional()[0].Name)
	require.Len(t, op.Options(), 1)
	assert.Equal(t, "offset", op.Options()[0].Name)
}

func TestVariablesEncodeAsJSONObject(t *testing.T) {
	op, err := Lookup("get-worker-details")
	require.NoError(t, err)
	values, err := op.Parse([]string{"gp", "BTC", "60", "5"}, nil)
	require.NoError(t, err)
	call, err := op.Build(values)
	require.NoError(t, err)

	data, err := json.Marshal(call.Request)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"duration":{"minutes":60}`))
}
