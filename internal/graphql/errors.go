package graphql

import (
	"fmt"
	"strings"
)

// RemoteError is returned by Execute when the server answers with a status
// other than 200. Body holds the decoded response text and may be empty.
type RemoteError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%d: %s: %s", e.StatusCode, e.Reason, e.Body)
}

// QueryError reports GraphQL-level errors found in an HTTP 200 payload.
// Execute never returns it; callers opt in through Errors.
type QueryError struct {
	Errors []Error
}

func (e *QueryError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, qe := range e.Errors {
		msgs[i] = qe.String()
	}
	return "graphql: " + strings.Join(msgs, "; ")
}
