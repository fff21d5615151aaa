package postgres

import (
	"context"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// TripStore implements store.TripStore using PostgreSQL.
type TripStore struct {
	db DB
}

// NewTripStore creates a new TripStore instance.
func NewTripStore(db DB) *TripStore {
	return &TripStore{db: db}
}

const tripColumns = `id, project_id, name, description, start_date, end_date,
	total_cost, expected_amount_per_person, created_at, updated_at`

func scanTrip(row interface{ Scan(dest ...any) error }) (*types.Trip, error) {
	trip := &types.Trip{}
	err := row.Scan(
		&trip.ID,
		&trip.ProjectID,
		&trip.Name,
		&trip.Description,
		&trip.StartDate,
		&trip.EndDate,
		&trip.TotalCost,
		&trip.ExpectedAmountPerPerson,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return trip, nil
}

// Create inserts a new trip and returns its generated ID.
func (s *TripStore) Create(ctx context.Context, trip *types.Trip) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO trips (project_id, name, description, start_date, end_date, total_cost, expected_amount_per_person)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		trip.ProjectID,
		trip.Name,
		trip.Description,
		trip.StartDate,
		trip.EndDate,
		trip.TotalCost,
		trip.ExpectedAmountPerPerson,
	).Scan(&id)
	if err != nil {
		return "", mapError(err)
	}
	return id, nil
}

// GetByID retrieves a trip by ID.
func (s *TripStore) GetByID(ctx context.Context, id string) (*types.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return scanTrip(s.db.QueryRow(ctx, query, id))
}

// ListByProject returns all trips under a project.
func (s *TripStore) ListByProject(ctx context.Context, projectID string) ([]types.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var trips []types.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *trip)
	}
	return trips, rows.Err()
}

// Update applies a partial update and returns the updated trip.
func (s *TripStore) Update(ctx context.Context, id string, update *types.TripUpdate) (*types.Trip, error) {
	query := `UPDATE trips
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			start_date = COALESCE($3, start_date),
			end_date = COALESCE($4, end_date),
			total_cost = COALESCE($5, total_cost),
			expected_amount_per_person = COALESCE($6, expected_amount_per_person),
			updated_at = NOW()
		WHERE id = $7
		RETURNING ` + tripColumns
	return scanTrip(s.db.QueryRow(ctx, query,
		update.Name,
		update.Description,
		update.StartDate,
		update.EndDate,
		update.TotalCost,
		update.ExpectedAmountPerPerson,
		id,
	))
}

// Delete removes a trip; participants and payments cascade.
func (s *TripStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Count returns the total number of trips.
func (s *TripStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM trips`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
