package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrMissingField means the payload has no data.<field> entry, as in an
	// error-only response.
	ErrMissingField = errors.New("result field not found in payload")

	// ErrNotConnection means the result is not a non-empty {edges: [{node}]}
	// list, so it has no tabular form.
	ErrNotConnection = errors.New("result is not a non-empty edge list")

	// ErrRaggedRows means a node lacks one of the columns taken from the
	// first node.
	ErrRaggedRows = errors.New("edge nodes do not share the same fields")
)

// Table is a titled grid of values. Column order is significant.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// Node is a GraphQL node object that remembers the key order of the
// response, which a plain map would lose.
type Node = orderedmap.OrderedMap[string, json.RawMessage]

// Edge is one entry of a connection's edges list.
type Edge struct {
	Node *Node `json:"node"`
}

// Nodes decodes result as a connection and returns its nodes in order.
// It returns ErrNotConnection when result is not an object, has no edges
// key, or the edges list is null or empty.
func Nodes(result json.RawMessage) ([]*Node, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(result, &obj); err != nil || obj == nil {
		return nil, ErrNotConnection
	}
	rawEdges, ok := obj["edges"]
	if !ok {
		return nil, ErrNotConnection
	}

	var edges []Edge
	if err := json.Unmarshal(rawEdges, &edges); err != nil {
		return nil, fmt.Errorf("decode edges: %w", err)
	}
	if len(edges) == 0 {
		return nil, ErrNotConnection
	}

	nodes := make([]*Node, len(edges))
	for i, e := range edges {
		if e.Node == nil {
			return nil, fmt.Errorf("edge %d: node is null or missing", i)
		}
		nodes[i] = e.Node
	}
	return nodes, nil
}

// Field returns data.<field> from a GraphQL payload.
func Field(payload json.RawMessage, field string) (json.RawMessage, error) {
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	result, ok := envelope.Data[field]
	if !ok {
		return nil, fmt.Errorf("%w: data.%s", ErrMissingField, field)
	}
	return result, nil
}

// Tabulate locates data.<field> in payload and flattens its edges into a
// table titled with field. The first node's keys become the columns; every
// other node must carry at least those keys.
//
// The located result is returned alongside the error so callers can fall
// back to showing it when the error is ErrNotConnection.
func Tabulate(field string, payload json.RawMessage) (*Table, json.RawMessage, error) {
	result, err := Field(payload, field)
	if err != nil {
		return nil, nil, err
	}

	nodes, err := Nodes(result)
	if err != nil {
		return nil, result, err
	}

	columns := Keys(nodes[0])
	tbl := &Table{Title: field, Columns: columns, Rows: make([][]any, 0, len(nodes))}
	for i, node := range nodes {
		row := make([]any, len(columns))
		for j, col := range columns {
			raw, ok := node.Get(col)
			if !ok {
				return nil, result, fmt.Errorf("%w: edge %d has no %q", ErrRaggedRows, i, col)
			}
			if row[j], err = DecodeValue(raw); err != nil {
				return nil, result, fmt.Errorf("edge %d field %q: %w", i, col, err)
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, result, nil
}

// Keys returns the node's keys in response order.
func Keys(node *Node) []string {
	keys := make([]string, 0, node.Len())
	for pair := node.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// DecodeValue decodes a JSON value, keeping numbers as json.Number so large
// hashrates and amounts survive untouched.
func DecodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
