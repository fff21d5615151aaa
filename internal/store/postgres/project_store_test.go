package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

func TestProjectStoreCreate(t *testing.T) {
	mock := newMockPool(t)
	s := NewProjectStore(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("Class fund", "School trips", "owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("project-1"))
	mock.ExpectExec(`INSERT INTO project_members`).
		WithArgs("project-1", "owner-1", types.RoleOwner).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	id, err := s.Create(context.Background(), &types.Project{
		Name:        "Class fund",
		Description: "School trips",
		OwnerID:     "owner-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "project-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreCreateRollsBackOnMemberInsertFailure(t *testing.T) {
	mock := newMockPool(t)
	s := NewProjectStore(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("Class fund", "", "owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("project-1"))
	mock.ExpectExec(`INSERT INTO project_members`).
		WithArgs("project-1", "owner-1", types.RoleOwner).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	_, err := s.Create(context.Background(), &types.Project{
		Name:    "Class fund",
		OwnerID: "owner-1",
	})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreGetByID(t *testing.T) {
	mock := newMockPool(t)
	s := NewProjectStore(mock)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, description, owner_id`).
		WithArgs("project-1").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "name", "description", "owner_id", "created_at", "updated_at"}).
			AddRow("project-1", "Class fund", "School trips", "owner-1", now, now))

	project, err := s.GetByID(context.Background(), "project-1")

	require.NoError(t, err)
	assert.Equal(t, "Class fund", project.Name)
	assert.Equal(t, "owner-1", project.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreListForUser(t *testing.T) {
	mock := newMockPool(t)
	s := NewProjectStore(mock)

	now := time.Now()
	mock.ExpectQuery(`JOIN project_members`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.
			NewRows([]string{"id", "name", "description", "owner_id", "created_at", "updated_at", "role"}).
			AddRow("project-1", "Class fund", "", "owner-1", now, now, types.RoleOwner).
			AddRow("project-2", "Club dues", "", "owner-2", now, now, types.RoleCollector))

	projects, err := s.ListForUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, types.RoleOwner, projects[0].Role)
	assert.Equal(t, types.RoleCollector, projects[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreDeleteNotFound(t *testing.T) {
	mock := newMockPool(t)
	s := NewProjectStore(mock)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
