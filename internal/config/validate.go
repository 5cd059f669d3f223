package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error

	u, err := url.ParseRequestURI(cfg.Endpoint)
	if err != nil {
		errs = append(errs, fmt.Errorf("endpoint: invalid URL %q: %w", cfg.Endpoint, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("endpoint: unsupported scheme %q, want http or https", u.Scheme))
	}

	if _, err := ParseRequestTimeout(cfg.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("request_timeout: %w", err))
	}

	for _, name := range sortedHeaderNames(cfg.Headers) {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("headers: empty header name"))
			continue
		}
		if strings.ContainsAny(name, " \t\r\n:") {
			errs = append(errs, fmt.Errorf("headers.%s: invalid header name", name))
		}
	}

	if strings.ContainsAny(cfg.Device.Fingerprint, "\r\n") {
		errs = append(errs, errors.New("device.fingerprint: must not contain line breaks"))
	}
	if strings.TrimSpace(cfg.Device.Name) == "" {
		errs = append(errs, errors.New("device.name: must not be empty"))
	}

	switch cfg.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if strings.TrimSpace(cfg.Server.Listen) == "" {
			errs = append(errs, errors.New("server.listen: required for http transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("server.transport: unknown transport %q, want %q or %q", cfg.Server.Transport, TransportStdio, TransportHTTP))
	}

	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q, want text or json", cfg.Log.Format))
	}

	return errors.Join(errs...)
}

// ParseRequestTimeout parses request_timeout. An empty value or "0" disables
// the per-request deadline.
func ParseRequestTimeout(raw string) (time.Duration, error) {
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("must be >= 0, got %q", raw)
	}
	return d, nil
}

func sortedHeaderNames(headers map[string]string) []string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
