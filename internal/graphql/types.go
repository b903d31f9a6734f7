// Package graphql implements the HTTP transport for the Luxor GraphQL API:
// one request carrying {query, variables}, one JSON payload back.
package graphql

import (
	"encoding/json"
	"fmt"
)

// APIKeyHeader carries the static API key on every request.
const APIKeyHeader = "x-lux-api-key"

// Request is the JSON body of a GraphQL HTTP request. Variables encodes as
// null when no variables were bound.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Error is a single entry of a GraphQL response "errors" array.
type Error struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e Error) String() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (path: %v)", e.Message, e.Path)
}

// Errors returns the GraphQL-level errors carried by a payload. A payload
// without an "errors" key yields an empty slice.
func Errors(payload json.RawMessage) ([]Error, error) {
	var envelope struct {
		Errors []Error `json:"errors"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("graphql: decode errors: %w", err)
	}
	return envelope.Errors, nil
}
