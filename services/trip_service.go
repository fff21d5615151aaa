package services

import (
	"context"
	"errors"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/logger"
	"github.com/tahseel-app/tahseel-backend/types"
)

// TripService handles trip CRUD. Trip mutations require owner or admin;
// collectors only read.
type TripService struct {
	trips     store.TripStore
	evaluator *access.Evaluator
}

// NewTripService creates a new TripService.
func NewTripService(trips store.TripStore, evaluator *access.Evaluator) *TripService {
	return &TripService{trips: trips, evaluator: evaluator}
}

// Create adds a trip to a project. Requires owner or admin in the project.
func (s *TripService) Create(ctx context.Context, userID string, req *types.CreateTripRequest) (*types.Trip, error) {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{ProjectID: req.ProjectID}, types.RolesManage...); err != nil {
		return nil, err
	}

	trip := &types.Trip{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.TotalCost != nil {
		if err := validateAmount("totalCost", *req.TotalCost); err != nil {
			return nil, err
		}
		trip.TotalCost = *req.TotalCost
	}
	if req.ExpectedAmountPerPerson != nil {
		if err := validateAmount("expectedAmountPerPerson", *req.ExpectedAmountPerPerson); err != nil {
			return nil, err
		}
		trip.ExpectedAmountPerPerson = *req.ExpectedAmountPerPerson
	}
	if err := validateDateRange(trip.StartDate, trip.EndDate); err != nil {
		return nil, err
	}

	id, err := s.trips.Create(ctx, trip)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	created, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Trip created", "tripID", id, "projectID", req.ProjectID, "createdBy", userID)
	return created, nil
}

// ListByProject returns all trips of a project. Any member may read them.
func (s *TripService) ListByProject(ctx context.Context, userID, projectID string) ([]types.Trip, error) {
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{ProjectID: projectID}); err != nil {
		return nil, err
	}

	trips, err := s.trips.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return trips, nil
}

// Get returns a trip together with the caller's role in its project.
func (s *TripService) Get(ctx context.Context, userID, tripID string) (*types.Trip, types.Role, error) {
	acc, err := s.evaluator.Resolve(ctx, userID, access.Ref{TripID: tripID})
	if err != nil {
		return nil, "", err
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperrors.NotFound("Trip", tripID)
		}
		return nil, "", apperrors.NewDatabaseError(err)
	}
	return trip, acc.Role, nil
}

// Update applies a partial update. Requires owner or admin.
func (s *TripService) Update(ctx context.Context, userID, tripID string, update *types.TripUpdate) (*types.Trip, error) {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{TripID: tripID}, types.RolesManage...); err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name == "" {
		return nil, apperrors.ValidationFailed("Trip name cannot be empty", "")
	}
	if update.TotalCost != nil {
		if err := validateAmount("totalCost", *update.TotalCost); err != nil {
			return nil, err
		}
	}
	if update.ExpectedAmountPerPerson != nil {
		if err := validateAmount("expectedAmountPerPerson", *update.ExpectedAmountPerPerson); err != nil {
			return nil, err
		}
	}
	if update.StartDate != nil && update.EndDate != nil {
		if err := validateDateRange(update.StartDate, update.EndDate); err != nil {
			return nil, err
		}
	}

	trip, err := s.trips.Update(ctx, tripID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Trip", tripID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return trip, nil
}

// Delete removes a trip and, via cascade, its participants and payments.
// Requires owner or admin.
func (s *TripService) Delete(ctx context.Context, userID, tripID string) error {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{TripID: tripID}, types.RolesManage...); err != nil {
		return err
	}

	if err := s.trips.Delete(ctx, tripID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Trip", tripID)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Trip deleted", "tripID", tripID, "deletedBy", userID)
	return nil
}
