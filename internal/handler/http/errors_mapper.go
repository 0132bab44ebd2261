package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
)

// writeError writes the uniform failure envelope with the given message and
// status code. Internal detail never reaches the caller; it is the caller's
// responsibility to log it first.
func writeError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Success: false, Error: message}, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing error response failed")
	}
}

// retryAfterSeconds converts a rate-limit reset time into a Retry-After
// header value. Always at least one second so clients never retry
// immediately.
func retryAfterSeconds(resetTime time.Time) string {
	seconds := int(time.Until(resetTime).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
