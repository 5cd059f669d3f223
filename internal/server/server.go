// Package server exposes the cuebridge tools over MCP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lydakis/cuebridge/internal/config"
	"github.com/lydakis/cuebridge/internal/logging"
	"github.com/lydakis/cuebridge/internal/response"
	"github.com/lydakis/cuebridge/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const name = "cuebridge"

const instructions = `cuebridge controls a theatrical lighting server.

Every call is checked against the server's device approval. If a tool fails with kind "device_not_approved", call register_device once, then ask the operator to approve the fingerprint on the lighting server before retrying. check_device reports the current status.

Bulk tools report partial failure as data: success is true when at least one item succeeded, and failedIds lists the rest.`

// New builds an MCP server with every tool registered.
func New(deps tools.Deps, logger *slog.Logger, version string) *mcpserver.MCPServer {
	if logger == nil {
		logger = logging.Discard()
	}
	s := mcpserver.NewMCPServer(name, version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions(instructions),
		mcpserver.WithToolHandlerMiddleware(logCalls(logger)),
	)
	for _, tool := range tools.All(deps) {
		s.AddTool(tool.Definition, tool.Handler)
	}
	return s
}

func logCalls(logger *slog.Logger) mcpserver.ToolHandlerMiddleware {
	return func(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			res, err := next(ctx, req)
			attrs := []any{"tool", req.Params.Name, "duration", time.Since(start)}
			switch {
			case err != nil:
				logger.Error("tool call failed", append(attrs, "error", err)...)
			case res != nil && res.IsError:
				attrs = append(attrs, "error", response.Text(res))
				if kind := errorKind(res); kind != "" {
					attrs = append(attrs, "kind", kind)
				}
				logger.Warn("tool returned error", attrs...)
			default:
				logger.Debug("tool call", attrs...)
			}
			return res, err
		}
	}
}

func errorKind(res *mcp.CallToolResult) string {
	content, ok := res.StructuredContent.(map[string]any)
	if !ok {
		return ""
	}
	if info, ok := content["error"].(response.ErrorInfo); ok {
		return info.Kind
	}
	return ""
}

// Serve runs s on the configured transport until ctx is done.
func Serve(ctx context.Context, s *mcpserver.MCPServer, cfg config.ServerConfig, logger *slog.Logger) error {
	if cfg.IsHTTP() {
		return serveHTTP(ctx, s, cfg.Listen, logger)
	}
	return serveStdio(ctx, s, logger)
}

func serveStdio(ctx context.Context, s *mcpserver.MCPServer, logger *slog.Logger) error {
	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	logger.Info("serving MCP on stdio")
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, s *mcpserver.MCPServer, addr string, logger *slog.Logger) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s)
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(addr)
	}()
	logger.Info("serving MCP over HTTP", "listen", addr)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http transport: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
