package postgres

import (
	"context"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// ParticipantStore implements store.ParticipantStore using PostgreSQL.
type ParticipantStore struct {
	db DB
}

// NewParticipantStore creates a new ParticipantStore instance.
func NewParticipantStore(db DB) *ParticipantStore {
	return &ParticipantStore{db: db}
}

const participantColumns = `id, trip_id, name, phone, email, expected_amount,
	created_by, updated_by, created_at, updated_at`

func scanParticipant(row interface{ Scan(dest ...any) error }) (*types.Participant, error) {
	p := &types.Participant{}
	err := row.Scan(
		&p.ID,
		&p.TripID,
		&p.Name,
		&p.Phone,
		&p.Email,
		&p.ExpectedAmount,
		&p.CreatedBy,
		&p.UpdatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// Create inserts a new participant and returns its generated ID.
func (s *ParticipantStore) Create(ctx context.Context, participant *types.Participant) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO participants (trip_id, name, phone, email, expected_amount, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		participant.TripID,
		participant.Name,
		participant.Phone,
		participant.Email,
		participant.ExpectedAmount,
		participant.CreatedBy,
		participant.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return "", mapError(err)
	}
	return id, nil
}

// GetByID retrieves a participant by ID.
func (s *ParticipantStore) GetByID(ctx context.Context, id string) (*types.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`
	return scanParticipant(s.db.QueryRow(ctx, query, id))
}

// ListByTrip returns all participants of a trip.
func (s *ParticipantStore) ListByTrip(ctx context.Context, tripID string) ([]types.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE trip_id = $1 ORDER BY created_at`
	rows, err := s.db.Query(ctx, query, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var participants []types.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// Update applies a partial update, stamps updated_by, and returns the updated
// participant.
func (s *ParticipantStore) Update(ctx context.Context, id string, update *types.ParticipantUpdate, updatedBy string) (*types.Participant, error) {
	query := `UPDATE participants
		SET name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			email = COALESCE($3, email),
			expected_amount = COALESCE($4, expected_amount),
			updated_by = $5,
			updated_at = NOW()
		WHERE id = $6
		RETURNING ` + participantColumns
	return scanParticipant(s.db.QueryRow(ctx, query,
		update.Name,
		update.Phone,
		update.Email,
		update.ExpectedAmount,
		updatedBy,
		id,
	))
}

// Delete removes a participant; its payments cascade.
func (s *ParticipantStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
