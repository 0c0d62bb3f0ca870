package middleware

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the HTTP header used to store the request id.
	RequestIDHeader = "X-Request-ID"

	// CorrelationIDHeader is the caller-supplied tracing token. It is used
	// as the request id when no X-Request-ID is sent.
	CorrelationIDHeader = "X-Correlation-ID"

	// RequestIDKey is the internal key used to store the ID in Echo context.
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
)

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RequestID returns an Echo middleware that ensures each request has a request ID.
//
// Behavior:
//   - A well-formed X-Request-ID header is reused.
//   - Otherwise a well-formed X-Correlation-ID header is reused.
//   - Otherwise a new UUID is generated.
//   - The id is stored in Echo context and echoed in the X-Request-ID response header.
//
// Malformed ids (too long, unexpected characters) are replaced so they never
// reach logs or response headers.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if !isValidRequestID(requestID) {
				requestID = c.Request().Header.Get(CorrelationIDHeader)
			}

			if !isValidRequestID(requestID) {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

func isValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}

	return validRequestID.MatchString(id)
}

// GetRequestID retrieves the request ID from Echo context.
//
// Returns empty string if not set.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}

	return ""
}
