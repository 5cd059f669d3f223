package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func clearOverrides(t *testing.T) {
	t.Helper()
	t.Setenv(EnvEndpoint, "")
	t.Setenv(EnvFingerprint, "")
	t.Setenv(EnvLogLevel, "")
}

func TestLoadFromExpandsEnvValuesAfterParsing(t *testing.T) {
	clearOverrides(t)
	t.Setenv("API_TOKEN", `abc"def`)

	path := writeConfig(t, `
endpoint = "https://lights.example.com/graphql"
[headers]
Authorization = "Bearer ${API_TOKEN}"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	got := cfg.Headers["Authorization"]
	want := `Bearer abc"def`
	if got != want {
		t.Fatalf("Authorization header = %q, want %q", got, want)
	}
	if cfg.Endpoint != "https://lights.example.com/graphql" {
		t.Fatalf("Endpoint = %q", cfg.Endpoint)
	}
}

func TestLoadFromLeavesUnresolvedPlaceholders(t *testing.T) {
	clearOverrides(t)

	path := writeConfig(t, `
[device]
name = "booth-${CUEBRIDGE_TEST_UNSET_VAR}"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Device.Name != "booth-${CUEBRIDGE_TEST_UNSET_VAR}" {
		t.Fatalf("Device.Name = %q, want placeholder preserved", cfg.Device.Name)
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	clearOverrides(t)
	t.Setenv("XDG_STATE_HOME", "/tmp/cuebridge-state")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Endpoint != DefaultEndpoint {
		t.Fatalf("Endpoint = %q, want %q", cfg.Endpoint, DefaultEndpoint)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Fatalf("RequestTimeout = %q, want %q", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.Server.Transport != TransportStdio {
		t.Fatalf("Server.Transport = %q, want %q", cfg.Server.Transport, TransportStdio)
	}
	want := filepath.Join("/tmp/cuebridge-state", "cuebridge", "fingerprint")
	if cfg.Device.FingerprintFile != want {
		t.Fatalf("Device.FingerprintFile = %q, want %q", cfg.Device.FingerprintFile, want)
	}
	if !cfg.Device.ShouldCheckOnStartup() {
		t.Fatal("ShouldCheckOnStartup() = false, want default true")
	}
}

func TestLoadFromEnvOverridesWinOverFile(t *testing.T) {
	clearOverrides(t)
	t.Setenv(EnvEndpoint, "http://override:4000/graphql")
	t.Setenv(EnvFingerprint, "fp-env")

	path := writeConfig(t, `
endpoint = "http://file:4000/graphql"
[device]
fingerprint = "fp-file"
check_on_startup = false
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Endpoint != "http://override:4000/graphql" {
		t.Fatalf("Endpoint = %q, want env override", cfg.Endpoint)
	}
	if cfg.Device.Fingerprint != "fp-env" {
		t.Fatalf("Device.Fingerprint = %q, want env override", cfg.Device.Fingerprint)
	}
	if cfg.Device.ShouldCheckOnStartup() {
		t.Fatal("ShouldCheckOnStartup() = true, want false from file")
	}
}

func TestLoadFromRejectsMalformedTOML(t *testing.T) {
	clearOverrides(t)
	path := writeConfig(t, `endpoint = `)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() error = nil, want parse error")
	}
}
