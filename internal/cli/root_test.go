package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/lydakis/cuebridge/internal/config"
	"github.com/lydakis/cuebridge/internal/graphql"
)

// captureOutput redirects rootStdout and rootStderr for the test and
// isolates config and state directories.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	oldOut := rootStdout
	oldErr := rootStderr
	t.Cleanup(func() {
		rootStdout = oldOut
		rootStderr = oldErr
	})
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvFingerprint, "")
	t.Setenv(config.EnvLogLevel, "")

	var out, errOut bytes.Buffer
	rootStdout = &out
	rootStderr = &errOut
	return &out, &errOut
}

func backend(t *testing.T, reply string) (*httptest.Server, func() string) {
	t.Helper()
	var (
		mu          sync.Mutex
		fingerprint string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		fingerprint = r.Header.Get(graphql.FingerprintHeader)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, func() string {
		mu.Lock()
		defer mu.Unlock()
		return fingerprint
	}
}

func TestRunVersion(t *testing.T) {
	out, errOut := captureOutput(t)
	oldVersion := buildVersion
	defer func() { buildVersion = oldVersion }()
	buildVersion = "1.2.3"

	if code := run(context.Background(), []string{"--version"}); code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
	if out.String() != "cuebridge 1.2.3\n" {
		t.Fatalf("output = %q, want %q", out.String(), "cuebridge 1.2.3\n")
	}
	if errOut.Len() != 0 {
		t.Fatalf("stderr = %q, want empty", errOut.String())
	}
}

func TestRunHelp(t *testing.T) {
	out, _ := captureOutput(t)

	if code := run(context.Background(), []string{"-h"}); code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
	for _, want := range []string{"cuebridge device register", "--endpoint", "config.toml"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("help output missing %q: %q", want, out.String())
		}
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := [][]string{
		{"bogus"},
		{"device"},
		{"device", "delete"},
		{"serve", "extra"},
		{"auth-settings", "--name", "x"},
		{"--no-such-flag"},
		{"auth-settings", "--endpoint", "ftp://example.com"},
	}
	for _, args := range tests {
		captureOutput(t)
		if code := run(context.Background(), args); code != ExitUsageErr {
			t.Fatalf("run(%v) = %d, want %d", args, code, ExitUsageErr)
		}
	}
}

func TestRunInvalidConfigFile(t *testing.T) {
	_, errOut := captureOutput(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("endpoint = [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if code := run(context.Background(), []string{"auth-settings", "--config", path}); code != ExitUsageErr {
		t.Fatalf("code = %d, want %d", code, ExitUsageErr)
	}
	if !strings.Contains(errOut.String(), "parsing config") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRunDeviceStatusUsesFlagFingerprint(t *testing.T) {
	out, _ := captureOutput(t)
	srv, seen := backend(t, `{"data":{"checkDeviceAuthorization":{"status":"APPROVED","message":"ok","device":null}}}`)

	code := run(context.Background(), []string{"device", "status", "--endpoint", srv.URL, "--fingerprint", "fp-cli"})
	if code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, out.String())
	}
	if got["status"] != "APPROVED" || got["fingerprint"] != "fp-cli" {
		t.Fatalf("output = %#v", got)
	}
	if seen() != "fp-cli" {
		t.Fatalf("fingerprint header = %q, want fp-cli", seen())
	}
}

func TestRunProvisionsFingerprintFile(t *testing.T) {
	out, _ := captureOutput(t)
	srv, seen := backend(t, `{"data":{"checkDeviceAuthorization":{"status":"UNKNOWN","message":"","device":null}}}`)

	if code := run(context.Background(), []string{"device", "status", "--endpoint", srv.URL}); code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
	if !strings.HasPrefix(seen(), "cuebridge-") {
		t.Fatalf("fingerprint header = %q, want generated", seen())
	}
	if !strings.Contains(out.String(), seen()) {
		t.Fatalf("output %q does not name fingerprint %q", out.String(), seen())
	}
}

func TestRunBackendErrorExitCode(t *testing.T) {
	_, errOut := captureOutput(t)
	srv, _ := backend(t, `{"errors":[{"message":"Device not approved","extensions":{"code":"DEVICE_NOT_APPROVED"}}]}`)

	code := run(context.Background(), []string{"auth-settings", "--endpoint", srv.URL, "--fingerprint", "fp-x"})
	if code != ExitBackendErr {
		t.Fatalf("code = %d, want %d", code, ExitBackendErr)
	}
	if !strings.Contains(errOut.String(), "Device not approved") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRunRegisterRejectedExitCode(t *testing.T) {
	out, _ := captureOutput(t)
	srv, _ := backend(t, `{"data":{"registerDevice":{"success":false,"message":"Registration disabled","device":null}}}`)

	code := run(context.Background(), []string{"device", "register", "--name", "Booth", "--endpoint", srv.URL, "--fingerprint", "fp-x"})
	if code != ExitBackendErr {
		t.Fatalf("code = %d, want %d", code, ExitBackendErr)
	}
	if !strings.Contains(out.String(), "Registration disabled") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunServeHTTPStopsWhenCancelled(t *testing.T) {
	captureOutput(t)
	srv, _ := backend(t, `{"data":{"authSettings":{"authEnabled":false,"deviceAuthEnabled":false}}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := run(ctx, []string{"serve", "--transport", "http", "--listen", "127.0.0.1:0", "--endpoint", srv.URL, "--fingerprint", "fp-x"})
	if code != ExitOK {
		t.Fatalf("code = %d, want %d", code, ExitOK)
	}
}

func TestResolveBuildVersionKeepsExplicit(t *testing.T) {
	if got := resolveBuildVersion("v0.3.0"); got != "v0.3.0" {
		t.Fatalf("resolveBuildVersion() = %q, want v0.3.0", got)
	}
}
