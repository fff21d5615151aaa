// Package access implements the project access-control evaluator. All role
// checks in the system flow through Resolve and RequireRole; no caller
// compares role strings inline.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// Ref identifies the target of an access check. An explicit ProjectID takes
// priority; otherwise the project is resolved by following TripID.
type Ref struct {
	ProjectID string
	TripID    string
}

// Access is a resolved membership: the caller's role in the target project.
type Access struct {
	UserID    string
	ProjectID string
	Role      types.Role
}

// Evaluator resolves membership and answers role queries.
type Evaluator struct {
	memberships store.MembershipStore
	trips       store.TripStore
	projects    store.ProjectStore
	users       store.UserStore
}

// NewEvaluator creates an Evaluator backed by the given stores.
func NewEvaluator(memberships store.MembershipStore, trips store.TripStore, projects store.ProjectStore, users store.UserStore) *Evaluator {
	return &Evaluator{
		memberships: memberships,
		trips:       trips,
		projects:    projects,
		users:       users,
	}
}

// Resolve determines the caller's role in the target project.
//
// The three failure modes are distinct error kinds, since they drive
// different caller behavior: an unresolvable target is a validation error, an
// unknown trip is NOT_FOUND, and a resolvable project without a membership
// row is FORBIDDEN_NOT_MEMBER.
func (e *Evaluator) Resolve(ctx context.Context, userID string, ref Ref) (*Access, error) {
	projectID := ref.ProjectID

	if projectID == "" && ref.TripID != "" {
		trip, err := e.trips.GetByID(ctx, ref.TripID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, apperrors.NotFound("Trip", ref.TripID)
			}
			return nil, apperrors.NewDatabaseError(err)
		}
		projectID = trip.ProjectID
	}

	if projectID == "" {
		return nil, apperrors.ValidationFailed(
			"Cannot determine project",
			"no project or trip reference supplied",
		)
	}

	membership, err := e.memberships.GetByProjectAndUser(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Distinguish a nonexistent project from a real project the
			// caller simply isn't a member of.
			if _, perr := e.projects.GetByID(ctx, projectID); perr != nil {
				if errors.Is(perr, store.ErrNotFound) {
					return nil, apperrors.NotFound("Project", projectID)
				}
				return nil, apperrors.NewDatabaseError(perr)
			}
			return nil, apperrors.NotMember(userID, projectID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return &Access{
		UserID:    userID,
		ProjectID: projectID,
		Role:      membership.Role,
	}, nil
}

// RequireRole checks a resolved access against an explicit role set.
func RequireRole(acc *Access, allowed ...types.Role) error {
	if acc == nil {
		return apperrors.InsufficientRole("You do not have permission to perform this action")
	}
	if !types.RoleIn(acc.Role, allowed) {
		roleNames := make([]string, len(allowed))
		for i, r := range allowed {
			roleNames[i] = r.String()
		}
		return apperrors.InsufficientRole(fmt.Sprintf(
			"This action requires one of the roles: %s", strings.Join(roleNames, ", ")))
	}
	return nil
}

// Require resolves access and checks the role set in one step.
func (e *Evaluator) Require(ctx context.Context, userID string, ref Ref, allowed ...types.Role) (*Access, error) {
	acc, err := e.Resolve(ctx, userID, ref)
	if err != nil {
		return nil, err
	}
	if err := RequireRole(acc, allowed...); err != nil {
		return nil, err
	}
	return acc, nil
}

// IsSystemAdmin reports whether the user carries the global system-admin
// flag. It bypasses per-project role checks only on the administrative
// surface, never on project-scoped operations.
func (e *Evaluator) IsSystemAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := e.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.NewDatabaseError(err)
	}
	return user.IsSystemAdmin, nil
}
