// Package tools defines the MCP tools cuebridge exposes. Every handler
// routes its GraphQL call through one graphql.Client and reports failures
// with response.Failure.
package tools

import (
	"log/slog"

	"github.com/lydakis/cuebridge/internal/device"
	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/logging"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool pairs a definition with its handler.
type Tool struct {
	Definition mcp.Tool
	Handler    server.ToolHandlerFunc
}

// Deps are the shared collaborators of every tool.
type Deps struct {
	Client     *graphql.Client
	Gateway    *device.Gateway
	DeviceName string
	Logger     *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return logging.Discard()
	}
	return d.Logger
}

// All returns every tool in registration order.
func All(d Deps) []Tool {
	var out []Tool
	out = append(out, deviceTools(d)...)
	out = append(out, projectTools(d)...)
	out = append(out, playbackTools(d)...)
	out = append(out, cueTools(d)...)
	out = append(out, bulkTools(d)...)
	return out
}
