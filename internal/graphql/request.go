package graphql

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Request is one GraphQL operation. It maps to exactly one network call.
type Request struct {
	OperationName string
	Document      string
	Variables     map[string]any
}

// Build returns a Request owning a copy of variables. The document is not
// inspected.
func Build(operationName, document string, variables map[string]any) Request {
	return Request{
		OperationName: operationName,
		Document:      document,
		Variables:     maps.Clone(variables),
	}
}

type payload struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Payload returns the JSON request body.
func (r Request) Payload() ([]byte, error) {
	vars := r.Variables
	if vars == nil {
		vars = map[string]any{}
	}
	body, err := json.Marshal(payload{Query: r.Document, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("encoding %s variables: %w", r.label(), err)
	}
	return body, nil
}

func (r Request) label() string {
	if r.OperationName == "" {
		return "GraphQL"
	}
	return r.OperationName
}
