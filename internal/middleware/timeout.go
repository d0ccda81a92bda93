package middleware

import (
	"net/http"
	"time"
)

const defaultRequestTimeout = 15 * time.Second

// Timeout aborts handlers that outlive the configured limit and replies
// with the standard error envelope.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = defaultRequestTimeout
	}

	body := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request exceeded the time limit"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, limit, body)
	}
}
