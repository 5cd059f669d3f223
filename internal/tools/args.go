package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func objectSchema(properties map[string]any, required ...string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func numberProp(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func idListProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "string"},
		"minItems":    1,
	}
}

func objectListProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "object"},
		"minItems":    1,
	}
}

func requireString(req mcp.CallToolRequest, name string) (string, error) {
	v, err := req.RequireString(name)
	if err != nil {
		return "", err
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s must not be empty", name)
	}
	return v, nil
}

func optionalString(req mcp.CallToolRequest, name string) (string, bool) {
	v, ok := req.GetArguments()[name].(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func optionalNumber(req mcp.CallToolRequest, name string) (float64, bool, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch n := raw.(type) {
	case float64:
		return n, true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
}

func requireNumber(req mcp.CallToolRequest, name string) (float64, error) {
	n, ok, err := optionalNumber(req, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("required argument %q not found", name)
	}
	return n, nil
}

func nonNegative(name string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func requireStringList(req mcp.CallToolRequest, name string) ([]string, error) {
	raw, ok := req.GetArguments()[name].([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", name)
	}
	out := make([]string, 0, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%s[%d] must be a non-empty string", name, i)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s must not be empty", name)
	}
	return out, nil
}

func requireObjectList(req mcp.CallToolRequest, name string, needID bool) ([]map[string]any, error) {
	raw, ok := req.GetArguments()[name].([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of objects", name)
	}
	out := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an object", name, i)
		}
		if needID {
			if id, _ := obj["id"].(string); strings.TrimSpace(id) == "" {
				return nil, fmt.Errorf("%s[%d].id is required", name, i)
			}
		}
		out = append(out, obj)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s must not be empty", name)
	}
	return out, nil
}
