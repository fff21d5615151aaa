package handlers

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/middleware"
)

// getUserIDFromContext returns the authenticated user ID set by the auth
// middleware, or "" when the route was somehow reached unauthenticated.
func getUserIDFromContext(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

// bindJSONOrError binds the JSON request body and sets a validation error if
// binding fails. Returns true if binding succeeded, false if the error was
// set (caller should return).
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request payload", err.Error()))
		return false
	}
	return true
}
