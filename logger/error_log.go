package logger

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// sensitiveHeaders are never written to logs.
var sensitiveHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
	"Set-Cookie":    true,
	"X-Api-Key":     true,
}

func filterSensitiveHeaders(headers http.Header) map[string][]string {
	filtered := make(map[string][]string, len(headers))
	for k, v := range headers {
		if sensitiveHeaders[k] {
			filtered[k] = []string{"[REDACTED]"}
			continue
		}
		filtered[k] = v
	}
	return filtered
}

// LogHTTPError logs a request-scoped error with the request metadata attached.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	fields := []interface{}{
		"error", err,
		"status_code", statusCode,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
	}
	if userID, ok := c.Get("user_id"); ok {
		fields = append(fields, "user_id", userID)
	}
	if requestID, ok := c.Get("request_id"); ok {
		fields = append(fields, "request_id", requestID)
	}

	log := GetLogger()
	if statusCode >= http.StatusInternalServerError {
		log.Errorw(message, fields...)
		return
	}
	log.Warnw(message, fields...)
}
