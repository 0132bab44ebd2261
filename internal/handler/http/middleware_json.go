package http

import (
	"net/http"
	"strings"
)

// validateJSONRequest enforces the content negotiation contract of the API.
//
// Mutating requests (POST, PUT, PATCH) with a body must declare
// "Content-Type: application/json"; anything else is rejected with
// HTTP 415 Unsupported Media Type. Requests carrying an "Accept" header
// must accept "application/json" or "*/*"; anything else is rejected
// with HTTP 406 Not Acceptable.
func (h *Handler) validateJSONRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if r.ContentLength != 0 && !isJSONContentType(r.Header.Get("Content-Type")) {
				writeError(w, r, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}

		if accept := r.Header.Get("Accept"); accept != "" && !acceptsJSON(accept) {
			writeError(w, r, "client must accept application/json", http.StatusNotAcceptable)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isJSONContentType matches "application/json" with optional parameters
// such as "; charset=utf-8".
func isJSONContentType(contentType string) bool {
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	return strings.EqualFold(mediaType, "application/json")
}

// acceptsJSON scans a raw "Accept" header for a media range compatible
// with JSON responses.
func acceptsJSON(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaRange := strings.TrimSpace(strings.Split(part, ";")[0])
		switch {
		case mediaRange == "*/*",
			mediaRange == "application/*",
			strings.EqualFold(mediaRange, "application/json"):
			return true
		}
	}
	return false
}
