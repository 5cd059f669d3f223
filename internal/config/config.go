package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lydakis/cuebridge/internal/paths"
)

// Environment variables that override the config file.
const (
	EnvEndpoint    = "CUEBRIDGE_GRAPHQL_ENDPOINT"
	EnvFingerprint = "CUEBRIDGE_DEVICE_FINGERPRINT"
	EnvLogLevel    = "CUEBRIDGE_LOG_LEVEL"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the config file and returns the parsed Config.
// If the config file does not exist, it returns the defaults (no error).
func Load() (*Config, error) {
	return LoadFrom(paths.ConfigFile())
}

// LoadFrom reads and parses a config file at the given path, expands
// ${ENV_VAR} placeholders, applies environment overrides and fills defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	expandConfigEnvVars(cfg)
	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// ExampleConfigPath returns the default config file path (for help messages).
func ExampleConfigPath() string {
	return paths.ConfigFile()
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := lookupNonEmpty(EnvEndpoint); ok {
		cfg.Endpoint = v
	}
	if v, ok := lookupNonEmpty(EnvFingerprint); ok {
		cfg.Device.Fingerprint = v
	}
	if v, ok := lookupNonEmpty(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Device.Name == "" {
		cfg.Device.Name = DefaultDeviceName
	}
	if cfg.Device.FingerprintFile == "" {
		cfg.Device.FingerprintFile = paths.FingerprintFile()
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = TransportStdio
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func lookupNonEmpty(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func expandConfigEnvVars(cfg *Config) {
	cfg.Endpoint = expandEnvVars(cfg.Endpoint)
	cfg.RequestTimeout = expandEnvVars(cfg.RequestTimeout)
	cfg.Device.Fingerprint = expandEnvVars(cfg.Device.Fingerprint)
	cfg.Device.FingerprintFile = expandEnvVars(cfg.Device.FingerprintFile)
	cfg.Device.Name = expandEnvVars(cfg.Device.Name)
	cfg.Server.Listen = expandEnvVars(cfg.Server.Listen)
	for k, v := range cfg.Headers {
		cfg.Headers[k] = expandEnvVars(v)
	}
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}
