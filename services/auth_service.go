package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/auth"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/logger"
	"github.com/tahseel-app/tahseel-backend/types"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

// AuthService handles signup, email verification, login and password reset.
type AuthService struct {
	users     store.UserStore
	email     EmailSender
	jwtSecret string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, email EmailSender, jwtSecret string) *AuthService {
	return &AuthService{users: users, email: email, jwtSecret: jwtSecret}
}

// Signup registers a new account and mails the verification link. A failure
// to deliver the email is logged but does not fail the signup; the link can
// be re-requested.
func (s *AuthService) Signup(ctx context.Context, req *types.SignupRequest) (*types.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflictError("An account with this email already exists", email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewDatabaseError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	token, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(verificationTokenTTL)

	user := &types.User{
		Name:                     req.Name,
		Email:                    email,
		PasswordHash:             hash,
		VerificationToken:        &token,
		VerificationTokenExpires: &expires,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewConflictError("An account with this email already exists", email)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	created, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if err := s.email.SendVerificationEmail(ctx, created.Email, created.Name, token); err != nil {
		logger.GetLogger().Errorw("Verification email not delivered",
			"error", err, "userID", id, "email", logger.MaskEmail(created.Email))
	}

	logger.GetLogger().Infow("User signed up", "userID", id, "email", logger.MaskEmail(created.Email))
	return created, nil
}

// VerifyEmail activates the account behind a verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ValidationFailed("Invalid or expired verification token", "")
		}
		return apperrors.NewDatabaseError(err)
	}
	if user.VerificationTokenExpires == nil || time.Now().After(*user.VerificationTokenExpires) {
		return apperrors.ValidationFailed("Invalid or expired verification token", "")
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationTokenExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Email verified", "userID", user.ID)
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account. The response does not disclose whether the email exists.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return apperrors.NewDatabaseError(err)
	}
	if user.EmailVerified {
		return nil
	}

	token, err := auth.NewOpaqueToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(verificationTokenTTL)
	user.VerificationToken = &token
	user.VerificationTokenExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if err := s.email.SendVerificationEmail(ctx, user.Email, user.Name, token); err != nil {
		logger.GetLogger().Errorw("Verification email not delivered",
			"error", err, "userID", user.ID)
	}
	return nil
}

// Login authenticates credentials and issues an access token. Unverified
// accounts cannot log in; the credential error never reveals which part of
// the pair was wrong.
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.AuthenticationFailed("Incorrect email or password")
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.AuthenticationFailed("Incorrect email or password")
	}
	if !user.EmailVerified {
		return nil, apperrors.AuthenticationFailed("Please verify your email address before logging in")
	}

	token, err := auth.IssueAccessToken(user.ID, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().Infow("User logged in", "userID", user.ID)
	return &types.AuthResponse{Token: token, User: user}, nil
}

// GetMe returns the authenticated account.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*types.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", userID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return user, nil
}

// ForgotPassword issues a reset token and mails the reset link. The response
// is identical whether or not the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return apperrors.NewDatabaseError(err)
	}

	token, err := auth.NewOpaqueToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = &token
	user.PasswordResetExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	if err := s.email.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		logger.GetLogger().Errorw("Password reset email not delivered",
			"error", err, "userID", user.ID)
	}
	return nil
}

// ResetPassword sets a new password behind a valid reset token and
// invalidates the token.
func (s *AuthService) ResetPassword(ctx context.Context, token string, req *types.ResetPasswordRequest) error {
	user, err := s.users.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.ValidationFailed("Invalid or expired reset token", "")
		}
		return apperrors.NewDatabaseError(err)
	}
	if user.PasswordResetExpires == nil || time.Now().After(*user.PasswordResetExpires) {
		return apperrors.ValidationFailed("Invalid or expired reset token", "")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Password reset", "userID", user.ID)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
