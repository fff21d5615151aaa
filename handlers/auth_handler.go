package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/types"
)

// AuthHandler exposes signup, login and the credential-token flows.
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers an account and mails the verification link.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"message": "Account created. Check your email to verify your address.",
	})
}

// VerifyEmail activates the account behind the token path parameter.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")
	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now log in."})
}

// ResendVerification issues a fresh verification link.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req types.ForgotPasswordRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	if err := h.authService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "If an unverified account exists for this email, a new link has been sent.",
	})
}

// Login authenticates credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetMe returns the authenticated account.
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := getUserIDFromContext(c)
	if userID == "" {
		_ = c.Error(apperrors.AuthenticationFailed("No authenticated user"))
		return
	}

	user, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ForgotPassword mails a reset link. The response does not disclose whether
// the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req types.ForgotPasswordRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists for this email, a reset link has been sent.",
	})
}

// ResetPassword sets a new password behind the token path parameter.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req types.ResetPasswordRequest
	if !bindJSONOrError(c, &req) {
		return
	}
	if err := h.authService.ResetPassword(c.Request.Context(), token, &req); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. You can now log in."})
}
