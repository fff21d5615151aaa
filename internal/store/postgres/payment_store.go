package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// PaymentStore implements store.PaymentStore using PostgreSQL. Aggregates are
// computed by the database and batched per trip, never queried per
// participant.
type PaymentStore struct {
	db DB
}

// NewPaymentStore creates a new PaymentStore instance.
func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

const paymentColumns = `id, participant_id, trip_id, collector_id, amount, payment_date, notes, created_at, updated_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (*types.Payment, error) {
	p := &types.Payment{}
	err := row.Scan(
		&p.ID,
		&p.ParticipantID,
		&p.TripID,
		&p.CollectorID,
		&p.Amount,
		&p.PaymentDate,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// Create inserts a new payment and returns its generated ID. The caller is
// responsible for setting TripID from the participant row.
func (s *PaymentStore) Create(ctx context.Context, payment *types.Payment) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO payments (participant_id, trip_id, collector_id, amount, payment_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		payment.ParticipantID,
		payment.TripID,
		payment.CollectorID,
		payment.Amount,
		payment.PaymentDate,
		payment.Notes,
	).Scan(&id)
	if err != nil {
		return "", mapError(err)
	}
	return id, nil
}

// GetByID retrieves a payment by ID.
func (s *PaymentStore) GetByID(ctx context.Context, id string) (*types.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(s.db.QueryRow(ctx, query, id))
}

// ListByTrip returns all payments of a trip with participant and collector
// identities flattened in.
func (s *PaymentStore) ListByTrip(ctx context.Context, tripID string) ([]types.PaymentDetail, error) {
	rows, err := s.db.Query(ctx,
		`SELECT p.id, p.participant_id, p.trip_id, p.collector_id, p.amount, p.payment_date, p.notes,
			p.created_at, p.updated_at, c.name, pt.name
		FROM payments p
		JOIN users c ON c.id = p.collector_id
		JOIN participants pt ON pt.id = p.participant_id
		WHERE p.trip_id = $1
		ORDER BY p.payment_date DESC`, tripID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var payments []types.PaymentDetail
	for rows.Next() {
		var d types.PaymentDetail
		err := rows.Scan(
			&d.ID,
			&d.ParticipantID,
			&d.TripID,
			&d.CollectorID,
			&d.Amount,
			&d.PaymentDate,
			&d.Notes,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.Collector.Name,
			&d.Participant.Name,
		)
		if err != nil {
			return nil, err
		}
		d.Collector.ID = d.CollectorID
		d.Participant.ID = d.ParticipantID
		payments = append(payments, d)
	}
	return payments, rows.Err()
}

// ListByParticipant returns all payments of one participant with collector
// identities.
func (s *PaymentStore) ListByParticipant(ctx context.Context, participantID string) ([]types.PaymentWithCollector, error) {
	return s.listWithCollector(ctx,
		`SELECT p.id, p.participant_id, p.trip_id, p.collector_id, p.amount, p.payment_date, p.notes,
			p.created_at, p.updated_at, c.name
		FROM payments p
		JOIN users c ON c.id = p.collector_id
		WHERE p.participant_id = $1
		ORDER BY p.payment_date DESC`, participantID)
}

// ListByParticipants fetches the payments of all given participants in a
// single query, for the trip report's in-memory grouping.
func (s *PaymentStore) ListByParticipants(ctx context.Context, participantIDs []string) ([]types.PaymentWithCollector, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}
	return s.listWithCollector(ctx,
		`SELECT p.id, p.participant_id, p.trip_id, p.collector_id, p.amount, p.payment_date, p.notes,
			p.created_at, p.updated_at, c.name
		FROM payments p
		JOIN users c ON c.id = p.collector_id
		WHERE p.participant_id = ANY($1::uuid[])
		ORDER BY p.payment_date DESC`, participantIDs)
}

func (s *PaymentStore) listWithCollector(ctx context.Context, query string, arg any) ([]types.PaymentWithCollector, error) {
	rows, err := s.db.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var payments []types.PaymentWithCollector
	for rows.Next() {
		var p types.PaymentWithCollector
		err := rows.Scan(
			&p.ID,
			&p.ParticipantID,
			&p.TripID,
			&p.CollectorID,
			&p.Amount,
			&p.PaymentDate,
			&p.Notes,
			&p.CreatedAt,
			&p.UpdatedAt,
			&p.Collector.Name,
		)
		if err != nil {
			return nil, err
		}
		p.Collector.ID = p.CollectorID
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SumByParticipant returns the collected total for one participant.
func (s *PaymentStore) SumByParticipant(ctx context.Context, participantID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE participant_id = $1`,
		participantID).Scan(&total)
	if err != nil {
		return decimal.Zero, mapError(err)
	}
	return total, nil
}

// SumByParticipants returns the collected total across a set of participants.
func (s *PaymentStore) SumByParticipants(ctx context.Context, participantIDs []string) (decimal.Decimal, error) {
	if len(participantIDs) == 0 {
		return decimal.Zero, nil
	}
	var total decimal.Decimal
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE participant_id = ANY($1::uuid[])`,
		participantIDs).Scan(&total)
	if err != nil {
		return decimal.Zero, mapError(err)
	}
	return total, nil
}

// CollectorTotalsByTrip groups a trip's payments by collector.
func (s *PaymentStore) CollectorTotalsByTrip(ctx context.Context, tripID string) ([]types.CollectorTotal, error) {
	return s.collectorTotals(ctx,
		`SELECT c.id, c.name, SUM(p.amount)
		FROM payments p
		JOIN users c ON c.id = p.collector_id
		WHERE p.trip_id = $1
		GROUP BY c.id, c.name`, tripID)
}

// CollectorTotalsByTrips groups payments by collector across a set of trips.
func (s *PaymentStore) CollectorTotalsByTrips(ctx context.Context, tripIDs []string) ([]types.CollectorTotal, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}
	return s.collectorTotals(ctx,
		`SELECT c.id, c.name, SUM(p.amount)
		FROM payments p
		JOIN users c ON c.id = p.collector_id
		WHERE p.trip_id = ANY($1::uuid[])
		GROUP BY c.id, c.name`, tripIDs)
}

func (s *PaymentStore) collectorTotals(ctx context.Context, query string, arg any) ([]types.CollectorTotal, error) {
	rows, err := s.db.Query(ctx, query, arg)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var totals []types.CollectorTotal
	for rows.Next() {
		var t types.CollectorTotal
		if err := rows.Scan(&t.CollectorID, &t.CollectorName, &t.Total); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// Update applies a partial update and returns the updated payment.
func (s *PaymentStore) Update(ctx context.Context, id string, update *types.PaymentUpdate) (*types.Payment, error) {
	query := `UPDATE payments
		SET amount = COALESCE($1, amount),
			payment_date = COALESCE($2, payment_date),
			notes = COALESCE($3, notes),
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + paymentColumns
	return scanPayment(s.db.QueryRow(ctx, query,
		update.Amount,
		update.PaymentDate,
		update.Notes,
		id,
	))
}

// Delete removes a payment.
func (s *PaymentStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Count returns the total number of payments.
func (s *PaymentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}
