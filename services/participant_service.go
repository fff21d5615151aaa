package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// ParticipantService handles participant CRUD. Every project member,
// collectors included, may manage participants; access is resolved through
// the participant's trip.
type ParticipantService struct {
	participants store.ParticipantStore
	payments     store.PaymentStore
	users        store.UserStore
	evaluator    *access.Evaluator
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(
	participants store.ParticipantStore,
	payments store.PaymentStore,
	users store.UserStore,
	evaluator *access.Evaluator,
) *ParticipantService {
	return &ParticipantService{
		participants: participants,
		payments:     payments,
		users:        users,
		evaluator:    evaluator,
	}
}

// Create adds a participant to a trip and stamps the creating user.
func (s *ParticipantService) Create(ctx context.Context, userID string, req *types.CreateParticipantRequest) (*types.Participant, error) {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{TripID: req.TripID}, types.RolesAnyMember...); err != nil {
		return nil, err
	}

	participant := &types.Participant{
		TripID:    req.TripID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedBy: &userID,
		UpdatedBy: &userID,
	}
	if req.ExpectedAmount != nil {
		if err := validateAmount("expectedAmount", *req.ExpectedAmount); err != nil {
			return nil, err
		}
		participant.ExpectedAmount = *req.ExpectedAmount
	}

	id, err := s.participants.Create(ctx, participant)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	created, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return created, nil
}

// ListByTrip returns a trip's participants with their paid totals and
// balances. Totals come from one batched payment query, not one per
// participant.
func (s *ParticipantService) ListByTrip(ctx context.Context, userID, tripID string) ([]types.ParticipantWithTotals, error) {
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{TripID: tripID}); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	if len(participants) == 0 {
		return []types.ParticipantWithTotals{}, nil
	}

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	payments, err := s.payments.ListByParticipants(ctx, ids)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	paidByParticipant := make(map[string]decimal.Decimal, len(participants))
	for _, p := range payments {
		paidByParticipant[p.ParticipantID] = paidByParticipant[p.ParticipantID].Add(p.Amount)
	}

	summaries, err := s.auditSummaries(ctx, participants)
	if err != nil {
		return nil, err
	}

	result := make([]types.ParticipantWithTotals, len(participants))
	for i, p := range participants {
		paid := paidByParticipant[p.ID]
		result[i] = types.ParticipantWithTotals{
			Participant:   p,
			TotalPaid:     paid,
			Balance:       p.ExpectedAmount.Sub(paid),
			CreatedByUser: lookupSummary(summaries, p.CreatedBy),
			UpdatedByUser: lookupSummary(summaries, p.UpdatedBy),
		}
	}
	return result, nil
}

// Get returns one participant with totals and the full payment list.
func (s *ParticipantService) Get(ctx context.Context, userID, participantID string) (*types.ParticipantDetail, error) {
	participant, err := s.getParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{TripID: participant.TripID}); err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	summaries, err := s.auditSummaries(ctx, []types.Participant{*participant})
	if err != nil {
		return nil, err
	}

	if payments == nil {
		payments = []types.PaymentWithCollector{}
	}
	return &types.ParticipantDetail{
		ParticipantWithTotals: types.ParticipantWithTotals{
			Participant:   *participant,
			TotalPaid:     paid,
			Balance:       participant.ExpectedAmount.Sub(paid),
			CreatedByUser: lookupSummary(summaries, participant.CreatedBy),
			UpdatedByUser: lookupSummary(summaries, participant.UpdatedBy),
		},
		Payments: payments,
	}, nil
}

// Update applies a partial update and stamps the updating user.
func (s *ParticipantService) Update(ctx context.Context, userID, participantID string, update *types.ParticipantUpdate) (*types.Participant, error) {
	participant, err := s.getParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{TripID: participant.TripID}, types.RolesAnyMember...); err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name == "" {
		return nil, apperrors.ValidationFailed("Participant name cannot be empty", "")
	}
	if update.ExpectedAmount != nil {
		if err := validateAmount("expectedAmount", *update.ExpectedAmount); err != nil {
			return nil, err
		}
	}

	updated, err := s.participants.Update(ctx, participantID, update, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Participant", participantID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return updated, nil
}

// Delete removes a participant; its payments cascade.
func (s *ParticipantService) Delete(ctx context.Context, userID, participantID string) error {
	participant, err := s.getParticipant(ctx, participantID)
	if err != nil {
		return err
	}
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{TripID: participant.TripID}, types.RolesAnyMember...); err != nil {
		return err
	}

	if err := s.participants.Delete(ctx, participantID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Participant", participantID)
		}
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *ParticipantService) getParticipant(ctx context.Context, id string) (*types.Participant, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Participant", id)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return participant, nil
}

// auditSummaries resolves the created-by and updated-by user IDs of a
// participant set into name summaries with one batched lookup.
func (s *ParticipantService) auditSummaries(ctx context.Context, participants []types.Participant) (map[string]types.UserSummary, error) {
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

func lookupSummary(summaries map[string]types.UserSummary, id *string) *types.UserSummary {
	if id == nil {
		return nil
	}
	if s, ok := summaries[*id]; ok {
		return &s
	}
	return nil
}
