package postgres

import (
	"context"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// MembershipStore implements store.MembershipStore using PostgreSQL.
type MembershipStore struct {
	db DB
}

// NewMembershipStore creates a new MembershipStore instance.
func NewMembershipStore(db DB) *MembershipStore {
	return &MembershipStore{db: db}
}

const memberColumns = `id, project_id, user_id, role, created_at, updated_at`

func scanMember(row interface{ Scan(dest ...any) error }) (*types.ProjectMember, error) {
	member := &types.ProjectMember{}
	err := row.Scan(
		&member.ID,
		&member.ProjectID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return member, nil
}

// GetByProjectAndUser retrieves the caller's membership row for a project.
func (s *MembershipStore) GetByProjectAndUser(ctx context.Context, projectID, userID string) (*types.ProjectMember, error) {
	query := `SELECT ` + memberColumns + ` FROM project_members
		WHERE project_id = $1 AND user_id = $2`
	return scanMember(s.db.QueryRow(ctx, query, projectID, userID))
}

// GetByID retrieves a membership row by its ID.
func (s *MembershipStore) GetByID(ctx context.Context, memberID string) (*types.ProjectMember, error) {
	query := `SELECT ` + memberColumns + ` FROM project_members WHERE id = $1`
	return scanMember(s.db.QueryRow(ctx, query, memberID))
}

// ListByProject returns all memberships joined with member identities, owner
// first.
func (s *MembershipStore) ListByProject(ctx context.Context, projectID string) ([]types.ProjectMemberDetail, error) {
	rows, err := s.db.Query(ctx,
		`SELECT m.id, m.role, u.id, u.name, u.email
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.role = 'owner' DESC, m.created_at`, projectID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var members []types.ProjectMemberDetail
	for rows.Next() {
		var m types.ProjectMemberDetail
		err := rows.Scan(&m.ID, &m.Role, &m.User.ID, &m.User.Name, &m.User.Email)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Add inserts a membership row. The (project_id, user_id) unique constraint
// surfaces duplicate memberships as store.ErrDuplicate.
func (s *MembershipStore) Add(ctx context.Context, member *types.ProjectMember) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id`,
		member.ProjectID, member.UserID, member.Role,
	).Scan(&id)
	if err != nil {
		return "", mapError(err)
	}
	return id, nil
}

// UpdateRole changes a member's role and returns the updated row.
func (s *MembershipStore) UpdateRole(ctx context.Context, memberID string, role types.Role) (*types.ProjectMember, error) {
	query := `UPDATE project_members
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + memberColumns
	return scanMember(s.db.QueryRow(ctx, query, role, memberID))
}

// Remove deletes a membership row.
func (s *MembershipStore) Remove(ctx context.Context, memberID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM project_members WHERE id = $1`, memberID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
