package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/logger"
)

func init() {
	logger.IsTest = true
}

// newMockPool creates a mock pool satisfying the DB interface.
func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))

	assert.ErrorIs(t, mapError(pgx.ErrNoRows), store.ErrNotFound)

	unique := &pgconn.PgError{Code: uniqueViolationCode}
	assert.ErrorIs(t, mapError(unique), store.ErrDuplicate)

	wrapped := fmt.Errorf("insert member: %w", &pgconn.PgError{Code: uniqueViolationCode})
	assert.ErrorIs(t, mapError(wrapped), store.ErrDuplicate)

	other := errors.New("connection refused")
	assert.Equal(t, other, mapError(other))
}
