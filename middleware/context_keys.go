package middleware

// Context keys shared between middleware and handlers.
const (
	// UserIDKey is the gin context key for the authenticated user's ID.
	UserIDKey = "user_id"
	// RequestIDKey is the gin context key for the per-request correlation ID.
	RequestIDKey = "request_id"
)
