package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lydakis/cuebridge/internal/httpheaders"
)

// MaxErrorBodyExcerpt bounds the response body quoted in transport errors.
// Longer bodies are cut at a UTF-8 boundary and suffixed with
// TruncationSuffix.
const (
	MaxErrorBodyExcerpt = 512
	TruncationSuffix    = "... (truncated)"
)

// Send performs one POST to the endpoint and decodes the response envelope.
// The envelope is not classified; see Classify.
func (c *Client) Send(ctx context.Context, req Request, sess Session) (*Envelope, error) {
	body, err := req.Payload()
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Operation: req.OperationName, Message: err.Error(), Err: err}
	}
	httpheaders.Apply(httpReq.Header, sess.Headers(c.headers))

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.connectionError(ctx, callCtx, req, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("graphql response",
		"operation", req.OperationName,
		"status", resp.StatusCode,
		"duration", time.Since(started),
		"fingerprint", sess.HasFingerprint(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyExcerpt+utf8.UTFMax))
		return nil, statusError(req, resp, raw)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.connectionError(ctx, callCtx, req, err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{
			Kind:       KindTransport,
			Operation:  req.OperationName,
			Message:    fmt.Sprintf("GraphQL response could not be decoded: %v", err),
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       excerpt(raw),
			Err:        err,
		}
	}
	return &env, nil
}

// connectionError classifies a failure before a response was read.
// The caller's context decides between cancellation and our own deadline.
func (c *Client) connectionError(parent, callCtx context.Context, req Request, err error) error {
	switch {
	case parent.Err() != nil && errors.Is(parent.Err(), context.Canceled):
		return &Error{Kind: KindCancelled, Operation: req.OperationName, Message: "GraphQL request cancelled: " + err.Error(), Err: err}
	case errors.Is(callCtx.Err(), context.DeadlineExceeded) || isTimeout(err):
		msg := "GraphQL request timed out"
		if c.timeout > 0 {
			msg += " after " + c.timeout.String()
		}
		return &Error{Kind: KindTimeout, Operation: req.OperationName, Message: msg + ": " + err.Error(), Err: err}
	default:
		return &Error{Kind: KindNetwork, Operation: req.OperationName, Message: err.Error(), Err: err}
	}
}

func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

func statusError(req Request, resp *http.Response, raw []byte) *Error {
	text := statusText(resp)
	msg := fmt.Sprintf("GraphQL request failed with status %d %s", resp.StatusCode, text)
	body := excerpt(raw)
	if body != "" {
		msg += ": " + body
	}
	return &Error{
		Kind:       KindTransport,
		Operation:  req.OperationName,
		Message:    msg,
		StatusCode: resp.StatusCode,
		Status:     text,
		Body:       body,
	}
}

// statusText prefers the reason phrase the server sent.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func excerpt(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) <= MaxErrorBodyExcerpt {
		return string(trimmed)
	}
	cut := MaxErrorBodyExcerpt
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return string(trimmed[:cut]) + TruncationSuffix
}
