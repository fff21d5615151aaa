package services

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/logger"
	"github.com/tahseel-app/tahseel-backend/types"
)

// PaymentService handles payment recording. Any member records payments;
// updating or deleting one requires being its collector of record, or owner
// or admin in the project.
type PaymentService struct {
	payments     store.PaymentStore
	participants store.ParticipantStore
	evaluator    *access.Evaluator
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	payments store.PaymentStore,
	participants store.ParticipantStore,
	evaluator *access.Evaluator,
) *PaymentService {
	return &PaymentService{
		payments:     payments,
		participants: participants,
		evaluator:    evaluator,
	}
}

// Create records a payment against a participant. The trip reference is taken
// from the participant row and the collector is always the caller; neither is
// accepted from the request.
func (s *PaymentService) Create(ctx context.Context, userID string, req *types.CreatePaymentRequest) (*types.Payment, error) {
	participant, err := s.participants.GetByID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Participant", req.ParticipantID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if _, err := s.evaluator.Require(ctx, userID, access.Ref{TripID: participant.TripID}, types.RolesAnyMember...); err != nil {
		return nil, err
	}

	if err := validatePositiveAmount("amount", req.Amount); err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := &types.Payment{
		ParticipantID: participant.ID,
		TripID:        participant.TripID,
		CollectorID:   userID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		Notes:         req.Notes,
	}

	id, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	created, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Payment recorded",
		"paymentID", id,
		"participantID", participant.ID,
		"tripID", participant.TripID,
		"collectorID", userID,
	)
	return created, nil
}

// ListByTrip returns a trip's payments. Any member may read them.
func (s *PaymentService) ListByTrip(ctx context.Context, userID, tripID string) ([]types.PaymentDetail, error) {
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{TripID: tripID}); err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return payments, nil
}

// Get returns a single payment.
func (s *PaymentService) Get(ctx context.Context, userID, paymentID string) (*types.Payment, error) {
	payment, _, err := s.authorize(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Update applies a partial update. The collector of record may edit their own
// payment; owners and admins may edit any.
func (s *PaymentService) Update(ctx context.Context, userID, paymentID string, update *types.PaymentUpdate) (*types.Payment, error) {
	payment, acc, err := s.authorize(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCollectorOrManager(payment, acc); err != nil {
		return nil, err
	}

	if update.Amount != nil {
		if err := validatePositiveAmount("amount", *update.Amount); err != nil {
			return nil, err
		}
	}

	updated, err := s.payments.Update(ctx, paymentID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Payment", paymentID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return updated, nil
}

// Delete removes a payment under the same rule as Update.
func (s *PaymentService) Delete(ctx context.Context, userID, paymentID string) error {
	payment, acc, err := s.authorize(ctx, userID, paymentID)
	if err != nil {
		return err
	}
	if err := s.requireCollectorOrManager(payment, acc); err != nil {
		return err
	}

	if err := s.payments.Delete(ctx, paymentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Payment", paymentID)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Payment deleted", "paymentID", paymentID, "deletedBy", userID)
	return nil
}

// authorize loads the payment and resolves the caller's membership in its
// project.
func (s *PaymentService) authorize(ctx context.Context, userID, paymentID string) (*types.Payment, *access.Access, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Payment", paymentID)
		}
		return nil, nil, apperrors.NewDatabaseError(err)
	}

	acc, err := s.evaluator.Resolve(ctx, userID, access.Ref{TripID: payment.TripID})
	if err != nil {
		return nil, nil, err
	}
	return payment, acc, nil
}

func (s *PaymentService) requireCollectorOrManager(payment *types.Payment, acc *access.Access) error {
	if payment.CollectorID == acc.UserID {
		return nil
	}
	if types.RoleIn(acc.Role, types.RolesManage) {
		return nil
	}
	return apperrors.InsufficientRole("You can only modify payments you collected")
}
