package types

import "time"

// User is a platform account. Password hashes and token material never leave
// the backend.
type User struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	Email                    string     `json:"email"`
	PasswordHash             string     `json:"-"`
	IsSystemAdmin            bool       `json:"isSystemAdmin"`
	EmailVerified            bool       `json:"emailVerified"`
	VerificationToken        *string    `json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`
	PasswordResetToken       *string    `json:"-"`
	PasswordResetExpires     *time.Time `json:"-"`
	CreatedAt                time.Time  `json:"createdAt"`
	UpdatedAt                time.Time  `json:"updatedAt"`
}

// UserSummary is the flattened identity embedded in responses in place of raw
// foreign keys.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserProfile is the member-facing view of a user, with contact email.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResponse is returned by login: the bearer token plus the account.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
