// Package resolve flattens known Luxor response shapes into rows for
// programmatic use. A Resolver returns either plain values (list mode) or a
// labeled output.Table (tabular mode), chosen when it is constructed.
package resolve

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmagro/luxor-cli/internal/output"
)

// ErrShape means the payload does not have the shape the resolver expects.
var ErrShape = errors.New("unexpected response shape")

// Result holds the output of one resolver call. Exactly one of Value and
// Table is set.
type Result struct {
	Value any           // list mode: []any of values or rows, or a scalar
	Table *output.Table // tabular mode
}

// Resolver post-processes payloads of the operations it knows about.
type Resolver struct {
	tabular bool
}

// New returns a Resolver; tabular selects labeled tables over plain lists.
func New(tabular bool) *Resolver {
	return &Resolver{tabular: tabular}
}

// Subaccounts returns the username of every subaccount in data.users.
func (r *Resolver) Subaccounts(payload json.RawMessage) (Result, error) {
	rows, err := nodeRows(payload, "users")
	if err != nil {
		return Result{}, err
	}

	names := make([]any, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return Result{}, fmt.Errorf("%w: data.users.edges[%d].node is empty", ErrShape, i)
		}
		names[i] = row[0]
	}

	if !r.tabular {
		return Result{Value: names}, nil
	}
	return tableResult("users", []string{"subaccounts"}, column(names)), nil
}

// SubaccountHashrateHistory returns [time, hashrate] pairs.
func (r *Resolver) SubaccountHashrateHistory(payload json.RawMessage) (Result, error) {
	return r.edgeRows(payload, "getHashrateHistory", []string{"timestamp", "hashrate"})
}

// WorkerHashrateHistory returns [time, hashrate] pairs of a single worker.
func (r *Resolver) WorkerHashrateHistory(payload json.RawMessage) (Result, error) {
	return r.edgeRows(payload, "getWorkerHashrateHistory", []string{"timestamp", "hashrate"})
}

// TransactionHistory returns one row per on-chain transaction.
func (r *Resolver) TransactionHistory(payload json.RawMessage) (Result, error) {
	return r.edgeRows(payload, "getTransactionHistory", []string{"createdAt", "amount", "status", "Transaction ID"})
}

// WorkerDetails flattens data.miners, as returned by the 1H and 24H worker
// overviews. In list mode each row is [workerName, details]; in tabular mode
// the details object is spread into its own columns after workerNames.
func (r *Resolver) WorkerDetails(payload json.RawMessage) (Result, error) {
	ns, err := nodes(payload, "miners")
	if err != nil {
		return Result{}, err
	}

	if !r.tabular {
		rows := make([]any, len(ns))
		for i, n := range ns {
			row, err := values(n)
			if err != nil {
				return Result{}, fmt.Errorf("%w: data.miners.edges[%d]: %v", ErrShape, i, err)
			}
			rows[i] = row
		}
		return Result{Value: rows}, nil
	}

	var columns []string
	grid := make([][]any, len(ns))
	for i, n := range ns {
		if n.Len() < 2 {
			return Result{}, fmt.Errorf("%w: data.miners.edges[%d].node needs a name and a details object", ErrShape, i)
		}
		name, err := output.DecodeValue(n.Oldest().Value)
		if err != nil {
			return Result{}, fmt.Errorf("%w: data.miners.edges[%d]: %v", ErrShape, i, err)
		}

		var details *output.Node
		if err := json.Unmarshal(n.Oldest().Next().Value, &details); err != nil || details == nil {
			return Result{}, fmt.Errorf("%w: data.miners.edges[%d]: details is not an object", ErrShape, i)
		}
		if columns == nil {
			columns = append([]string{"workerNames"}, output.Keys(details)...)
		}

		row := []any{name}
		for _, key := range columns[1:] {
			raw, ok := details.Get(key)
			if !ok {
				row = append(row, nil)
				continue
			}
			v, err := output.DecodeValue(raw)
			if err != nil {
				return Result{}, fmt.Errorf("%w: data.miners.edges[%d].%s: %v", ErrShape, i, key, err)
			}
			row = append(row, v)
		}
		grid[i] = row
	}
	return tableResult("miners", columns, grid), nil
}

// ProfileActiveWorkerCount returns data.getProfileActiveWorkers.
func (r *Resolver) ProfileActiveWorkerCount(payload json.RawMessage) (Result, error) {
	return r.count(payload, "getProfileActiveWorkers", "activeWorkers")
}

// ProfileInactiveWorkerCount returns data.getProfileInactiveWorkers.
func (r *Resolver) ProfileInactiveWorkerCount(payload json.RawMessage) (Result, error) {
	return r.count(payload, "getProfileInactiveWorkers", "inactiveWorkers")
}

func (r *Resolver) count(payload json.RawMessage, field, label string) (Result, error) {
	raw, err := output.Field(payload, field)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrShape, err)
	}
	var n *int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return Result{}, fmt.Errorf("%w: data.%s is not an integer: %v", ErrShape, field, err)
	}
	if n == nil {
		return Result{}, fmt.Errorf("%w: data.%s is null", ErrShape, field)
	}

	if !r.tabular {
		return Result{Value: *n}, nil
	}
	return tableResult(field, []string{label}, [][]any{{*n}}), nil
}

// edgeRows returns every node's values in response order.
func (r *Resolver) edgeRows(payload json.RawMessage, field string, columns []string) (Result, error) {
	rows, err := nodeRows(payload, field)
	if err != nil {
		return Result{}, err
	}

	if !r.tabular {
		list := make([]any, len(rows))
		for i, row := range rows {
			list[i] = row
		}
		return Result{Value: list}, nil
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return Result{}, fmt.Errorf("%w: data.%s.edges[%d] has %d values, want %d", ErrShape, field, i, len(row), len(columns))
		}
	}
	return tableResult(field, columns, rows), nil
}

func tableResult(title string, columns []string, rows [][]any) Result {
	return Result{Table: &output.Table{Title: title, Columns: columns, Rows: rows}}
}

// nodes returns data.<field>.edges[*].node. An empty edge list is valid and
// yields no nodes.
func nodes(payload json.RawMessage, field string) ([]*output.Node, error) {
	result, err := output.Field(payload, field)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}

	var conn struct {
		Edges *[]output.Edge `json:"edges"`
	}
	if err := json.Unmarshal(result, &conn); err != nil || conn.Edges == nil {
		return nil, fmt.Errorf("%w: data.%s.edges is missing", ErrShape, field)
	}

	out := make([]*output.Node, len(*conn.Edges))
	for i, e := range *conn.Edges {
		if e.Node == nil {
			return nil, fmt.Errorf("%w: data.%s.edges[%d].node is missing", ErrShape, field, i)
		}
		out[i] = e.Node
	}
	return out, nil
}

func nodeRows(payload json.RawMessage, field string) ([][]any, error) {
	ns, err := nodes(payload, field)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, len(ns))
	for i, n := range ns {
		if rows[i], err = values(n); err != nil {
			return nil, fmt.Errorf("%w: data.%s.edges[%d]: %v", ErrShape, field, i, err)
		}
	}
	return rows, nil
}

// values returns the node's decoded values in response order.
func values(n *output.Node) ([]any, error) {
	row := make([]any, 0, n.Len())
	for pair := n.Oldest(); pair != nil; pair = pair.Next() {
		v, err := output.DecodeValue(pair.Value)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

func column(vals []any) [][]any {
	rows := make([][]any, len(vals))
	for i, v := range vals {
		rows[i] = []any{v}
	}
	return rows
}

// Func is the signature shared by every resolver method.
type Func func(payload json.RawMessage) (Result, error)

// For returns the resolver method for a CLI command name.
func (r *Resolver) For(command string) (Func, bool) {
	fns := map[string]Func{
		"get-subaccounts":                   r.Subaccounts,
		"get-subaccount-hashrate-history":   r.SubaccountHashrateHistory,
		"get-worker-details-1h":             r.WorkerDetails,
		"get-worker-details-24h":            r.WorkerDetails,
		"get-worker-hashrate-history":       r.WorkerHashrateHistory,
		"get-profile-active-worker-count":   r.ProfileActiveWorkerCount,
		"get-profile-inactive-worker-count": r.ProfileInactiveWorkerCount,
		"get-transaction-history":           r.TransactionHistory,
	}
	fn, ok := fns[command]
	return fn, ok
}
