package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lydakis/cuebridge/internal/device"
	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/lydakis/cuebridge/internal/logging"
	"github.com/lydakis/cuebridge/internal/tools"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func newBackend(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func connect(t *testing.T, ctx context.Context, s *mcpserver.MCPServer) *mcpclient.Client {
	t.Helper()
	httpServer := mcpserver.NewTestStreamableHTTPServer(s)
	t.Cleanup(httpServer.Close)

	c, err := mcpclient.NewStreamableHttpClient(httpServer.URL)
	if err != nil {
		t.Fatalf("NewStreamableHttpClient() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: "2025-11-25",
			ClientInfo:      mcp.Implementation{Name: "cuebridge-test", Version: "0.0.0"},
		},
	}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return c
}

func testDeps(url string) tools.Deps {
	client := graphql.NewClient(url, graphql.WithFingerprint("fp-test"))
	return tools.Deps{Client: client, Gateway: device.NewGateway(client), DeviceName: "test"}
}

func TestServerListsEveryTool(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deps := testDeps("http://127.0.0.1:1")
	c := connect(t, ctx, New(deps, nil, "test"))

	res, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if got, want := len(res.Tools), len(tools.All(deps)); got != want {
		t.Fatalf("ListTools() = %d tools, want %d", got, want)
	}
}

func TestServerCallsToolAndLogsDeniedDevice(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backend := newBackend(t, `{"errors":[{"message":"Device not approved","extensions":{"code":"DEVICE_NOT_APPROVED"}}]}`)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := connect(t, ctx, New(testDeps(backend.URL), logger, "test"))

	res, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "fade_to_black", Arguments: map[string]any{}},
	})
	if err != nil {
		t.Fatalf("CallTool() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("CallTool() IsError = false, want true")
	}

	var text string
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			text += tc.Text
		}
	}
	if !strings.Contains(text, "fp-test") {
		t.Fatalf("result text = %q, want fingerprint", text)
	}
	if !strings.Contains(logs.String(), "kind=device_not_approved") {
		t.Fatalf("logs = %q, want device_not_approved kind", logs.String())
	}
}

func TestServeHTTPStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveHTTP(ctx, New(testDeps("http://127.0.0.1:1"), nil, "test"), "127.0.0.1:0", logging.Discard())
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serveHTTP() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serveHTTP did not stop")
	}
}
