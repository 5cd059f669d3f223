package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/lydakis/cuebridge/internal/logging"
)

// Client sends GraphQL operations to one backend endpoint.
// It is safe for concurrent use.
type Client struct {
	endpoint    string
	httpClient  *http.Client
	headers     map[string]string
	timeout     time.Duration
	logger      *slog.Logger
	fingerprint atomic.Pointer[string]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithHeaders adds headers to every request. They cannot override
// Content-Type, Accept or the fingerprint header.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = maps.Clone(headers)
	}
}

// WithTimeout bounds every call. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFingerprint sets the initial default fingerprint.
func WithFingerprint(fp string) Option {
	return func(c *Client) {
		c.SetFingerprint(fp)
	}
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the backend URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Timeout returns the per-call deadline, zero if none.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// SetFingerprint replaces the default fingerprint. An empty value clears it.
//
// Calls already in flight keep the Session they started with. In practice
// the fingerprint is set once at startup.
func (c *Client) SetFingerprint(fp string) {
	if fp == "" {
		c.fingerprint.Store(nil)
		return
	}
	c.fingerprint.Store(&fp)
}

// ClearFingerprint removes the default fingerprint; subsequent requests
// carry no fingerprint header.
func (c *Client) ClearFingerprint() {
	c.fingerprint.Store(nil)
}

// Fingerprint returns the default fingerprint and whether one is set.
func (c *Client) Fingerprint() (string, bool) {
	fp := c.fingerprint.Load()
	if fp == nil {
		return "", false
	}
	return *fp, true
}

// Session snapshots the default fingerprint.
func (c *Client) Session() Session {
	fp, _ := c.Fingerprint()
	return Session{Fingerprint: fp}
}

// Execute sends req with the current Session, classifies the response and
// decodes the data payload into out (which may be nil).
func (c *Client) Execute(ctx context.Context, req Request, out any) error {
	return c.ExecuteWith(ctx, c.Session(), req, out)
}

// ExecuteWith is Execute with an explicit Session.
func (c *Client) ExecuteWith(ctx context.Context, sess Session, req Request, out any) error {
	env, err := c.Send(ctx, req, sess)
	if err != nil {
		return err
	}

	data, err := Classify(env, sess)
	if err != nil {
		if gqlErr, ok := err.(*Error); ok {
			gqlErr.Operation = req.OperationName
			if gqlErr.Dropped > 0 {
				c.logger.Debug("graphql response carried additional errors",
					"operation", req.OperationName,
					"surfaced", gqlErr.Message,
					"dropped", gqlErr.Dropped,
				)
			}
		}
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", req.label(), err)
	}
	return nil
}
