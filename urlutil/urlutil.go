// Package urlutil normalizes user-supplied URLs and extracts display domains.
package urlutil

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a raw user input into a fetchable absolute URL.
// Input is trimmed and lower-cased; a missing scheme defaults to https.
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}
	return normalized
}

// ExtractDomain returns the hostname of a URL with a leading "www." stripped.
// If the input cannot be parsed even after scheme injection, the original
// string is returned unchanged so the pipeline always has a domain label.
func ExtractDomain(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// IsValid reports whether the input parses as a URL after normalization.
func IsValid(raw string) bool {
	u, err := url.Parse(Normalize(raw))
	return err == nil && u.Hostname() != ""
}
