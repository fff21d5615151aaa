package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// ReportService builds read-only financial summaries. Expected totals derive
// from participant expected amounts and collected totals from payment rows;
// nothing here is stored or cached.
type ReportService struct {
	projects     store.ProjectStore
	memberships  store.MembershipStore
	trips        store.TripStore
	participants store.ParticipantStore
	payments     store.PaymentStore
	users        store.UserStore
	evaluator    *access.Evaluator
}

// NewReportService creates a new ReportService.
func NewReportService(
	projects store.ProjectStore,
	memberships store.MembershipStore,
	trips store.TripStore,
	participants store.ParticipantStore,
	payments store.PaymentStore,
	users store.UserStore,
	evaluator *access.Evaluator,
) *ReportService {
	return &ReportService{
		projects:     projects,
		memberships:  memberships,
		trips:        trips,
		participants: participants,
		payments:     payments,
		users:        users,
		evaluator:    evaluator,
	}
}

// GetProjectSummary aggregates every trip of a project. Any member may read
// it. Per-trip totals are gathered concurrently; collector totals come from a
// single grouped query across all trips.
func (s *ReportService) GetProjectSummary(ctx context.Context, userID, projectID string) (*types.ProjectSummary, error) {
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{ProjectID: projectID}); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Project", projectID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	members, err := s.memberships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	trips, err := s.trips.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	tripIDs := make([]string, len(trips))
	for i, t := range trips {
		tripIDs[i] = t.ID
	}

	// Results are index-addressed so the goroutines never share slices.
	stats := make([]types.TripStat, len(trips))
	var collectorTotals []types.CollectorTotal

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, trip := range trips {
		g.Go(func() error {
			stat, err := s.tripStat(gctx, trip)
			if err != nil {
				return err
			}
			stats[i] = *stat
			return nil
		})
	}
	g.Go(func() error {
		totals, err := s.payments.CollectorTotalsByTrips(gctx, tripIDs)
		if err != nil {
			return apperrors.NewDatabaseError(err)
		}
		collectorTotals = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalExpected := decimal.Zero
	totalCollected := decimal.Zero
	for _, stat := range stats {
		totalExpected = totalExpected.Add(stat.Expected)
		totalCollected = totalCollected.Add(stat.Collected)
	}

	if collectorTotals == nil {
		collectorTotals = []types.CollectorTotal{}
	}
	return &types.ProjectSummary{
		Project:          project,
		Members:          members,
		TripCount:        len(trips),
		Trips:            stats,
		TotalExpected:    totalExpected,
		TotalCollected:   totalCollected,
		TotalRemaining:   totalExpected.Sub(totalCollected),
		PercentComplete:  types.PercentComplete(totalCollected, totalExpected),
		CollectorSummary: collectorTotals,
	}, nil
}

// tripStat computes one trip's expected and collected totals with two batched
// queries.
func (s *ReportService) tripStat(ctx context.Context, trip types.Trip) (*types.TripStat, error) {
	participants, err := s.participants.ListByTrip(ctx, trip.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	expected := decimal.Zero
	ids := make([]string, len(participants))
	for i, p := range participants {
		expected = expected.Add(p.ExpectedAmount)
		ids[i] = p.ID
	}

	collected, err := s.payments.SumByParticipants(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.TripStat{
		ID:              trip.ID,
		Name:            trip.Name,
		Expected:        expected,
		Collected:       collected,
		Remaining:       expected.Sub(collected),
		PercentComplete: types.PercentComplete(collected, expected),
	}, nil
}

// GetTripReport builds the per-participant breakdown of one trip. All payment
// rows are fetched in a single query and grouped in memory.
func (s *ReportService) GetTripReport(ctx context.Context, userID, tripID string) (*types.TripReport, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Trip", tripID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{ProjectID: trip.ProjectID}); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	participantIDs := make([]string, len(participants))
	for i, p := range participants {
		participantIDs[i] = p.ID
	}
	payments, err := s.payments.ListByParticipants(ctx, participantIDs)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	paymentsByParticipant := make(map[string][]types.PaymentWithCollector, len(participants))
	for _, p := range payments {
		paymentsByParticipant[p.ParticipantID] = append(paymentsByParticipant[p.ParticipantID], p)
	}

	summaries, err := s.auditSummaries(ctx, participants)
	if err != nil {
		return nil, err
	}

	totalExpected := decimal.Zero
	totalCollected := decimal.Zero
	reports := make([]types.ParticipantReport, len(participants))
	for i, p := range participants {
		rows := paymentsByParticipant[p.ID]
		if rows == nil {
			rows = []types.PaymentWithCollector{}
		}
		paid := decimal.Zero
		for _, payment := range rows {
			paid = paid.Add(payment.Amount)
		}

		reports[i] = types.ParticipantReport{
			ID:              p.ID,
			Name:            p.Name,
			ExpectedAmount:  p.ExpectedAmount,
			PaidAmount:      paid,
			RemainingAmount: p.ExpectedAmount.Sub(paid),
			PercentComplete: types.PercentComplete(paid, p.ExpectedAmount),
			Payments:        rows,
			CreatedByUser:   lookupSummary(summaries, p.CreatedBy),
			UpdatedByUser:   lookupSummary(summaries, p.UpdatedBy),
		}
		totalExpected = totalExpected.Add(p.ExpectedAmount)
		totalCollected = totalCollected.Add(paid)
	}

	collectorTotals, err := s.payments.CollectorTotalsByTrip(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if collectorTotals == nil {
		collectorTotals = []types.CollectorTotal{}
	}

	return &types.TripReport{
		Trip:             trip,
		Participants:     reports,
		TotalExpected:    totalExpected,
		TotalCollected:   totalCollected,
		TotalRemaining:   totalExpected.Sub(totalCollected),
		PercentComplete:  types.PercentComplete(totalCollected, totalExpected),
		CollectorSummary: collectorTotals,
	}, nil
}

// auditSummaries resolves created-by and updated-by IDs the same way the
// participant service does.
func (s *ReportService) auditSummaries(ctx context.Context, participants []types.Participant) (map[string]types.UserSummary, error) {
	idSet := make(map[string]struct{})
	for _, p := range participants {
		if p.CreatedBy != nil {
			idSet[*p.CreatedBy] = struct{}{}
		}
		if p.UpdatedBy != nil {
			idSet[*p.UpdatedBy] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return summaries, nil
}
