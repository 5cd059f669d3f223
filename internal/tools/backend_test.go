package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/lydakis/cuebridge/internal/device"
	"github.com/lydakis/cuebridge/internal/graphql"
	"github.com/mark3labs/mcp-go/mcp"
)

type gqlCall struct {
	Query       string
	Variables   map[string]any
	Fingerprint string
}

// fakeBackend replies by the first keyword found in the query document.
func fakeBackend(t *testing.T, replies map[string]string) (*httptest.Server, func() []gqlCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []gqlCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		_ = json.Unmarshal(raw, &body)
		mu.Lock()
		calls = append(calls, gqlCall{
			Query:       body.Query,
			Variables:   body.Variables,
			Fingerprint: r.Header.Get(graphql.FingerprintHeader),
		})
		mu.Unlock()

		for keyword, reply := range replies {
			if strings.Contains(body.Query, keyword) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, reply)
				return
			}
		}
		http.Error(w, "unexpected query", http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []gqlCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]gqlCall(nil), calls...)
	}
}

func testDeps(url string, opts ...graphql.Option) Deps {
	client := graphql.NewClient(url, opts...)
	return Deps{
		Client:     client,
		Gateway:    device.NewGateway(client),
		DeviceName: "booth",
	}
}

func findTool(t *testing.T, d Deps, name string) Tool {
	t.Helper()
	for _, tool := range All(d) {
		if tool.Definition.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %q not registered", name)
	return Tool{}
}

func callTool(t *testing.T, d Deps, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := findTool(t, d, name)
	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	if err != nil {
		t.Fatalf("%s handler error = %v", name, err)
	}
	if res == nil {
		t.Fatalf("%s returned nil result", name)
	}
	return res
}

// structured round-trips StructuredContent through JSON so tests can assert
// on plain maps.
func structured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return out
}
