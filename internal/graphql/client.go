package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// HTTPDoer is the subset of *http.Client the transport needs.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config is the long-lived state of a Client.
type Config struct {
	Endpoint string
	APIKey   string
	Method   string
	Verbose  bool // Log each outgoing query before sending it
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.doer = doer }
}

// WithLogger sets the logger used for verbose query logging.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// Client sends GraphQL documents to a single endpoint. It holds no per-call
// state and performs exactly one HTTP request per Execute.
type Client struct {
	endpoint string
	apiKey   string
	method   string
	verbose  bool
	doer     HTTPDoer
	log      logrus.FieldLogger
}

// NewClient validates cfg and returns a Client for it.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("graphql: endpoint is required")
	}
	if cfg.Method == "" {
		return nil, fmt.Errorf("graphql: method is required")
	}

	c := &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		method:   strings.ToUpper(cfg.Method),
		verbose:  cfg.Verbose,
		doer:     http.DefaultClient,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Execute sends req and returns the response body unchanged when the server
// answers 200 with valid JSON. GraphQL "errors" inside such a body are left
// for the caller; see Errors.
//
// Any other status yields a *RemoteError carrying the status code, reason
// phrase and body text.
func (c *Client) Execute(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("graphql: encode request: %w", err)
	}

	if c.verbose {
		c.log.WithFields(logrus.Fields{
			"method":   c.method,
			"endpoint": c.endpoint,
		}).Info(req.Query)
	}

	httpReq, err := http.NewRequestWithContext(ctx, c.method, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("graphql: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(APIKeyHeader, c.apiKey)

	start := time.Now()
	httpResp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if c.verbose {
		c.log.WithFields(logrus.Fields{
			"status":  httpResp.StatusCode,
			"latency": time.Since(start).Round(time.Millisecond),
		}).Info("response received")
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("graphql: read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &RemoteError{
			StatusCode: httpResp.StatusCode,
			Reason:     reasonPhrase(httpResp),
			Body:       string(respBody),
		}
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("graphql: invalid JSON response")
	}
	return json.RawMessage(respBody), nil
}

// reasonPhrase extracts "Not Found" from a status line like "404 Not Found".
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
