package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/logger"
	"github.com/tahseel-app/tahseel-backend/types"
)

const recentUserLimit = 5

// AdminService implements the system-administration surface. Every operation
// requires the global system-admin flag; project roles play no part here.
type AdminService struct {
	users     store.UserStore
	projects  store.ProjectStore
	trips     store.TripStore
	payments  store.PaymentStore
	evaluator *access.Evaluator
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	users store.UserStore,
	projects store.ProjectStore,
	trips store.TripStore,
	payments store.PaymentStore,
	evaluator *access.Evaluator,
) *AdminService {
	return &AdminService{
		users:     users,
		projects:  projects,
		trips:     trips,
		payments:  payments,
		evaluator: evaluator,
	}
}

func (s *AdminService) requireSystemAdmin(ctx context.Context, userID string) error {
	isAdmin, err := s.evaluator.IsSystemAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperrors.InsufficientRole("System administrator access required")
	}
	return nil
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context, userID string) ([]types.User, error) {
	if err := s.requireSystemAdmin(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return users, nil
}

// ListProjects returns every project with its owner and counts.
func (s *AdminService) ListProjects(ctx context.Context, userID string) ([]types.AdminProject, error) {
	if err := s.requireSystemAdmin(ctx, userID); err != nil {
		return nil, err
	}
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return projects, nil
}

// Stats gathers the dashboard counters concurrently.
func (s *AdminService) Stats(ctx context.Context, userID string) (*types.SystemStats, error) {
	if err := s.requireSystemAdmin(ctx, userID); err != nil {
		return nil, err
	}

	stats := &types.SystemStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.UserCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ProjectCount, err = s.projects.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TripCount, err = s.trips.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PaymentCount, err = s.payments.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentUsers, err = s.users.ListRecent(gctx, recentUserLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if stats.RecentUsers == nil {
		stats.RecentUsers = []types.User{}
	}
	return stats, nil
}

// SetSystemAdmin grants or revokes the global admin flag on a target account.
func (s *AdminService) SetSystemAdmin(ctx context.Context, userID, targetID string, isAdmin bool) error {
	if err := s.requireSystemAdmin(ctx, userID); err != nil {
		return err
	}
	if userID == targetID && !isAdmin {
		return apperrors.ValidationFailed("You cannot revoke your own administrator access", "")
	}

	if err := s.users.SetSystemAdmin(ctx, targetID, isAdmin); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("User", targetID)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("System admin flag changed",
		"targetID", targetID, "isAdmin", isAdmin, "changedBy", userID)
	return nil
}
