package config

// Config is the top-level cuebridge configuration.
type Config struct {
	// Endpoint is the GraphQL URL of the lighting backend.
	Endpoint       string            `toml:"endpoint"`
	RequestTimeout string            `toml:"request_timeout"`
	Headers        map[string]string `toml:"headers"`

	Device DeviceConfig `toml:"device"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// DeviceConfig controls the identity presented to the backend.
type DeviceConfig struct {
	Fingerprint     string `toml:"fingerprint"`
	FingerprintFile string `toml:"fingerprint_file"`
	Name            string `toml:"name"`
	AutoRegister    bool   `toml:"auto_register"`
	CheckOnStartup  *bool  `toml:"check_on_startup"`
}

// ServerConfig selects how the MCP server is exposed.
type ServerConfig struct {
	Transport string `toml:"transport"` // "stdio" or "http"
	Listen    string `toml:"listen"`
}

// LogConfig configures the stderr logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// Defaults.
const (
	DefaultEndpoint       = "http://localhost:4000/graphql"
	DefaultRequestTimeout = "30s"
	DefaultDeviceName     = "cuebridge"
	DefaultListen         = "127.0.0.1:8765"

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ShouldCheckOnStartup reports whether the device probe runs at startup.
// It defaults to true when unset.
func (d DeviceConfig) ShouldCheckOnStartup() bool {
	return d.CheckOnStartup == nil || *d.CheckOnStartup
}

// IsHTTP returns true if the server listens on streamable HTTP.
func (s ServerConfig) IsHTTP() bool {
	return s.Transport == TransportHTTP
}
