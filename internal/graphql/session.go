package graphql

import "github.com/lydakis/cuebridge/internal/httpheaders"

// FingerprintHeader carries the device fingerprint.
const FingerprintHeader = "X-Device-Fingerprint"

// Session is the per-call identity. The zero value has no fingerprint.
type Session struct {
	Fingerprint string
}

// HasFingerprint reports whether the session identifies a device.
func (s Session) HasFingerprint() bool {
	return s.Fingerprint != ""
}

// fingerprintOrUnknown is the value reported in device denials.
func (s Session) fingerprintOrUnknown() string {
	if s.HasFingerprint() {
		return s.Fingerprint
	}
	return "unknown"
}

// Headers returns the request headers for this session layered over extra.
// Built-in headers win over extra. Without a fingerprint the fingerprint
// header is absent, never empty.
func (s Session) Headers(extra map[string]string) map[string]string {
	headers := httpheaders.Merge(make(map[string]string, len(extra)+3), extra, true)
	headers = httpheaders.Set(headers, "Content-Type", "application/json")
	headers = httpheaders.Set(headers, "Accept", "application/json")
	if s.HasFingerprint() {
		headers = httpheaders.Set(headers, FingerprintHeader, s.Fingerprint)
	} else {
		httpheaders.Delete(headers, FingerprintHeader)
	}
	return headers
}
