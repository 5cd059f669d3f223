// Package response shapes tool results returned to the agent.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/mark3labs/mcp-go/mcp"
)

// Structured returns v as structured content with its JSON as text.
func Structured(v any) *mcp.CallToolResult {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultStructuredOnly(v)
	}
	return mcp.NewToolResultStructured(v, string(text))
}

// Invalid reports a bad tool argument.
func Invalid(format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...))
}

// ErrorInfo is the structured part of a failed tool result.
type ErrorInfo struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Message     string `json:"message"`
	Operation   string `json:"operation,omitempty"`
	StatusCode  int    `json:"statusCode,omitempty"`
	Code        string `json:"code,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Failure reports err as "Failed to <action>: <cause>". Backend errors keep
// their kind in the structured content so agents can branch on it.
func Failure(action string, err error) *mcp.CallToolResult {
	text := fmt.Sprintf("Failed to %s: %v", action, err)
	info := ErrorInfo{Kind: "internal", Name: "Error", Message: err.Error()}

	var gqlErr *graphql.Error
	if errors.As(err, &gqlErr) {
		info = ErrorInfo{
			Kind:        string(gqlErr.Kind),
			Name:        gqlErr.Name(),
			Message:     gqlErr.Message,
			Operation:   gqlErr.Operation,
			StatusCode:  gqlErr.StatusCode,
			Code:        gqlErr.Code,
			Fingerprint: gqlErr.Fingerprint,
		}
		if gqlErr.Kind == graphql.KindDeviceNotApproved {
			text += fmt.Sprintf("\nThis device (fingerprint %s) is not approved. Register it with register_device if needed, ask an operator to approve it on the lighting server, then retry.", gqlErr.Fingerprint)
		}
	}

	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(text)},
		StructuredContent: map[string]any{"error": info},
		IsError:           true,
	}
}

// Text joins the text content of a result.
func Text(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	var parts []string
	for _, content := range result.Content {
		switch c := content.(type) {
		case mcp.TextContent:
			parts = append(parts, c.Text)
		case *mcp.TextContent:
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
