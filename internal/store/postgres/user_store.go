package postgres

import (
	"context"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// UserStore implements store.UserStore using PostgreSQL.
type UserStore struct {
	db DB
}

// NewUserStore creates a new UserStore instance.
func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, email, password_hash, is_system_admin, email_verified,
	verification_token, verification_token_expires, password_reset_token, password_reset_expires,
	created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*types.User, error) {
	user := &types.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsSystemAdmin,
		&user.EmailVerified,
		&user.VerificationToken,
		&user.VerificationTokenExpires,
		&user.PasswordResetToken,
		&user.PasswordResetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// Create inserts a new user and returns its generated ID.
func (s *UserStore) Create(ctx context.Context, user *types.User) (string, error) {
	query := `
		INSERT INTO users (name, email, password_hash, verification_token, verification_token_expires)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id string
	err := s.db.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.VerificationToken,
		user.VerificationTokenExpires,
	).Scan(&id)
	if err != nil {
		return "", mapError(err)
	}
	return id, nil
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(s.db.QueryRow(ctx, query, email))
}

// GetByVerificationToken retrieves a user by an unexpired verification token.
func (s *UserStore) GetByVerificationToken(ctx context.Context, token string) (*types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE verification_token = $1 AND verification_token_expires > NOW()`
	return scanUser(s.db.QueryRow(ctx, query, token))
}

// GetByResetToken retrieves a user by an unexpired password reset token.
func (s *UserStore) GetByResetToken(ctx context.Context, token string) (*types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE password_reset_token = $1 AND password_reset_expires > NOW()`
	return scanUser(s.db.QueryRow(ctx, query, token))
}

// Update persists mutable account fields (auth flows rewrite token material).
func (s *UserStore) Update(ctx context.Context, user *types.User) error {
	query := `
		UPDATE users
		SET name = $1,
			email = $2,
			password_hash = $3,
			email_verified = $4,
			verification_token = $5,
			verification_token_expires = $6,
			password_reset_token = $7,
			password_reset_expires = $8,
			updated_at = NOW()
		WHERE id = $9`

	tag, err := s.db.Exec(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.EmailVerified,
		user.VerificationToken,
		user.VerificationTokenExpires,
		user.PasswordResetToken,
		user.PasswordResetExpires,
		user.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetSystemAdmin toggles the global system-admin flag.
func (s *UserStore) SetSystemAdmin(ctx context.Context, id string, isAdmin bool) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET is_system_admin = $1, updated_at = NOW() WHERE id = $2`,
		isAdmin, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// List returns all users, newest first.
func (s *UserStore) List(ctx context.Context) ([]types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// ListRecent returns the newest accounts, for the admin dashboard.
func (s *UserStore) ListRecent(ctx context.Context, limit int) ([]types.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1`
	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []types.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// GetSummaries resolves display identities for a set of user IDs in one query.
func (s *UserStore) GetSummaries(ctx context.Context, ids []string) (map[string]types.UserSummary, error) {
	summaries := make(map[string]types.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, name FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var summary types.UserSummary
		if err := rows.Scan(&summary.ID, &summary.Name); err != nil {
			return nil, err
		}
		summaries[summary.ID] = summary
	}
	return summaries, rows.Err()
}
