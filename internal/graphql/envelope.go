package graphql

import (
	"bytes"
	"encoding/json"
)

// Envelope is a decoded GraphQL response body.
type Envelope struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ErrorEntry    `json:"errors,omitempty"`
}

// ErrorEntry is one element of the response errors list.
type ErrorEntry struct {
	Message    string         `json:"message,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	Path       []any          `json:"path,omitempty"`
}

// HasData reports whether data is present and not null.
func (e *Envelope) HasData() bool {
	if e == nil {
		return false
	}
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Code returns extensions.code when it is a string.
func (e ErrorEntry) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}
