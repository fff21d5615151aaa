package postgres

import (
	"context"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// ProjectStore implements store.ProjectStore using PostgreSQL.
type ProjectStore struct {
	db DB
}

// NewProjectStore creates a new ProjectStore instance.
func NewProjectStore(db DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts the project and its owner membership row in one transaction.
// If either insert fails both are rolled back, so a project can never exist
// without exactly one owner membership.
func (s *ProjectStore) Create(ctx context.Context, project *types.Project) (string, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", mapError(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id string
	err = tx.QueryRow(ctx,
		`INSERT INTO projects (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		project.Name, project.Description, project.OwnerID,
	).Scan(&id)
	if err != nil {
		return "", mapError(err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)`,
		id, project.OwnerID, types.RoleOwner,
	)
	if err != nil {
		return "", mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", mapError(err)
	}
	return id, nil
}

// GetByID retrieves a project by ID.
func (s *ProjectStore) GetByID(ctx context.Context, id string) (*types.Project, error) {
	project := &types.Project{}
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, owner_id, created_at, updated_at
		FROM projects WHERE id = $1`, id,
	).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return project, nil
}

// ListForUser returns every project the user belongs to, joined with the
// user's role in it.
func (s *ProjectStore) ListForUser(ctx context.Context, userID string) ([]types.ProjectWithRole, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at, m.role
		FROM projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var projects []types.ProjectWithRole
	for rows.Next() {
		var p types.ProjectWithRole
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.OwnerID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.Role,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update applies a partial update and returns the updated project.
func (s *ProjectStore) Update(ctx context.Context, id string, update *types.ProjectUpdate) (*types.Project, error) {
	project := &types.Project{}
	err := s.db.QueryRow(ctx,
		`UPDATE projects
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, owner_id, created_at, updated_at`,
		update.Name, update.Description, id,
	).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return project, nil
}

// Delete removes the project. Memberships, trips, participants and payments
// go with it via ON DELETE CASCADE.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListAll returns every project with owner identity and counts, for the
// administrative surface.
func (s *ProjectStore) ListAll(ctx context.Context) ([]types.AdminProject, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at,
			u.name,
			(SELECT COUNT(*) FROM project_members m WHERE m.project_id = p.id),
			(SELECT COUNT(*) FROM trips t WHERE t.project_id = p.id)
		FROM projects p
		JOIN users u ON u.id = p.owner_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var projects []types.AdminProject
	for rows.Next() {
		var p types.AdminProject
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.OwnerID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.Owner.Name,
			&p.MemberCount,
			&p.TripCount,
		)
		if err != nil {
			return nil, err
		}
		p.Owner.ID = p.OwnerID
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Count returns the total number of projects.
func (s *ProjectStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
