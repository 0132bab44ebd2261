package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP derives the rate-limit identifier for a request from the usual
// proxy headers, falling back to the socket peer address.
//
// Header precedence: X-Forwarded-For (first entry), X-Real-IP,
// CF-Connecting-IP. A request exposing none of them is keyed by the remote
// address host, or "unknown" as a last resort.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// X-Forwarded-For can contain multiple IPs; the first one is the
		// original client.
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}

	return "unknown"
}
