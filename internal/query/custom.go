package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/dmagro/luxor-cli/internal/graphql"
)

// Custom builds a call from a raw document and a JSON object of variables.
// The document is parsed locally so syntax errors surface before anything is
// sent; the result field is the first top-level field of the first operation.
// An empty or "null" params string sends null variables.
func Custom(document, params string) (Call, error) {
	field, err := ResultField(document)
	if err != nil {
		return Call{}, err
	}

	var vars map[string]any
	if p := strings.TrimSpace(params); p != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(p)))
		dec.UseNumber()
		if err := dec.Decode(&vars); err != nil {
			return Call{}, fmt.Errorf("%w: params must be a JSON object: %v", ErrInvalidArgument, err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return Call{}, fmt.Errorf("%w: params has trailing data after the JSON object", ErrInvalidArgument)
		}
	}

	return Call{
		Operation: "create-custom-request",
		Field:     field,
		Request:   graphql.Request{Query: document, Variables: vars},
	}, nil
}

// ResultField parses document and returns the response key of the first
// top-level field of its first operation: the alias if present, else the
// field name. It returns "" when the first selection is a fragment.
func ResultField(document string) (string, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "custom", Input: document})
	if err != nil {
		return "", fmt.Errorf("%w: query: %v", ErrInvalidArgument, err)
	}
	if len(doc.Operations) == 0 {
		return "", fmt.Errorf("%w: query: document has no operation", ErrInvalidArgument)
	}

	selections := doc.Operations[0].SelectionSet
	if len(selections) == 0 {
		return "", nil
	}
	f, ok := selections[0].(*ast.Field)
	if !ok {
		return "", nil
	}
	if f.Alias != "" {
		return f.Alias, nil
	}
	return f.Name, nil
}
