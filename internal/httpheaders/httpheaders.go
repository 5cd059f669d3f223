// Package httpheaders manipulates header maps whose keys are matched
// case-insensitively, the way HTTP treats them.
package httpheaders

import (
	"net/http"
	"sort"
	"strings"
)

// Set writes a header value using case-insensitive key matching.
// If an equivalent key already exists with different casing, it is replaced.
func Set(headers map[string]string, name, value string) map[string]string {
	name = strings.TrimSpace(name)
	if name == "" {
		return headers
	}

	if headers == nil {
		headers = make(map[string]string, 1)
	}
	Delete(headers, name)
	headers[name] = value
	return headers
}

// Delete removes every key equivalent to name.
func Delete(headers map[string]string, name string) {
	for key := range headers {
		if strings.EqualFold(strings.TrimSpace(key), strings.TrimSpace(name)) {
			delete(headers, key)
		}
	}
}

// Get returns the value stored under a key equivalent to name.
func Get(headers map[string]string, name string) (string, bool) {
	for key, value := range headers {
		if strings.EqualFold(strings.TrimSpace(key), strings.TrimSpace(name)) {
			return value, true
		}
	}
	return "", false
}

// Merge applies src entries into dst using case-insensitive key matching.
// When overwrite is false, existing dst entries win.
func Merge(dst map[string]string, src map[string]string, overwrite bool) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}

	for _, key := range sortedKeys(src) {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if _, ok := Get(dst, name); ok && !overwrite {
			continue
		}
		dst = Set(dst, name, src[key])
	}
	return dst
}

// Apply copies headers onto h, canonicalizing names.
func Apply(h http.Header, headers map[string]string) {
	for _, key := range sortedKeys(headers) {
		h.Set(strings.TrimSpace(key), headers[key])
	}
}

func sortedKeys(src map[string]string) []string {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		li := strings.ToLower(strings.TrimSpace(keys[i]))
		lj := strings.ToLower(strings.TrimSpace(keys[j]))
		if li == lj {
			return keys[i] < keys[j]
		}
		return li < lj
	})
	return keys
}
