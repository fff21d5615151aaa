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

// ProjectService handles project CRUD and member management.
type ProjectService struct {
	projects    store.ProjectStore
	memberships store.MembershipStore
	users       store.UserStore
	evaluator   *access.Evaluator
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projects store.ProjectStore,
	memberships store.MembershipStore,
	users store.UserStore,
	evaluator *access.Evaluator,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		memberships: memberships,
		users:       users,
		evaluator:   evaluator,
	}
}

// Create persists a new project. The creator becomes its owner; the project
// row and the owner membership row are written in one transaction by the
// store.
func (s *ProjectService) Create(ctx context.Context, userID string, req *types.CreateProjectRequest) (*types.Project, error) {
	if req.Name == "" {
		return nil, apperrors.ValidationFailed("Project name is required", "")
	}

	project := &types.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}

	id, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	created, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Project created", "projectID", id, "ownerID", userID)
	return created, nil
}

// Get returns a project together with the caller's role in it.
func (s *ProjectService) Get(ctx context.Context, userID, projectID string) (*types.Project, types.Role, error) {
	acc, err := s.evaluator.Resolve(ctx, userID, access.Ref{ProjectID: projectID})
	if err != nil {
		return nil, "", err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", apperrors.NotFound("Project", projectID)
		}
		return nil, "", apperrors.NewDatabaseError(err)
	}
	return project, acc.Role, nil
}

// ListForUser returns every project the user belongs to, with their role.
func (s *ProjectService) ListForUser(ctx context.Context, userID string) ([]types.ProjectWithRole, error) {
	projects, err := s.projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return projects, nil
}

// Update applies a partial update. Requires owner or admin.
func (s *ProjectService) Update(ctx context.Context, userID, projectID string, update *types.ProjectUpdate) (*types.Project, error) {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{ProjectID: projectID}, types.RolesManage...); err != nil {
		return nil, err
	}
	if update.Name != nil && *update.Name == "" {
		return nil, apperrors.ValidationFailed("Project name cannot be empty", "")
	}

	project, err := s.projects.Update(ctx, projectID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Project", projectID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	return project, nil
}

// Delete removes a project and, via cascade, its memberships, trips,
// participants and payments. Owner only.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{ProjectID: projectID}, types.RolesOwnerOnly...); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Project", projectID)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Project deleted", "projectID", projectID, "deletedBy", userID)
	return nil
}

// ListMembers returns the project's membership list. Any member may read it.
func (s *ProjectService) ListMembers(ctx context.Context, userID, projectID string) ([]types.ProjectMemberDetail, error) {
	if _, err := s.evaluator.Resolve(ctx, userID, access.Ref{ProjectID: projectID}); err != nil {
		return nil, err
	}

	members, err := s.memberships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return members, nil
}

// AddMember grants an existing user a role in the project. The target is
// identified by email and must already hold an account; the owner role is
// never assignable through this path.
func (s *ProjectService) AddMember(ctx context.Context, userID, projectID string, req *types.AddMemberRequest) (*types.ProjectMemberDetail, error) {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{ProjectID: projectID}, types.RolesManage...); err != nil {
		return nil, err
	}

	if req.Role == types.RoleOwner {
		return nil, apperrors.OwnerProtected("The owner role cannot be assigned")
	}
	if !req.Role.IsAssignable() {
		return nil, apperrors.ValidationFailed("Invalid role. Must be admin or collector", req.Role.String())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User", req.Email)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	memberID, err := s.memberships.Add(ctx, &types.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      req.Role,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.NewConflictError("User is already a member of this project", req.Email)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.ProjectMemberDetail{
		ID:   memberID,
		Role: req.Role,
		User: types.UserProfile{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

// UpdateMemberRole changes a member's role. The owner membership is immutable
// and the owner role unassignable, regardless of caller role.
func (s *ProjectService) UpdateMemberRole(ctx context.Context, userID, projectID, memberID string, role types.Role) (*types.ProjectMember, error) {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{ProjectID: projectID}, types.RolesManage...); err != nil {
		return nil, err
	}

	member, err := s.getProjectMember(ctx, projectID, memberID)
	if err != nil {
		return nil, err
	}

	if member.Role == types.RoleOwner {
		return nil, apperrors.OwnerProtected("Cannot change the role of the project owner")
	}
	if role == types.RoleOwner {
		return nil, apperrors.OwnerProtected("The owner role cannot be assigned")
	}
	if !role.IsAssignable() {
		return nil, apperrors.ValidationFailed("Invalid role. Must be admin or collector", role.String())
	}

	updated, err := s.memberships.UpdateRole(ctx, memberID, role)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return updated, nil
}

// RemoveMember deletes a membership row. The owner membership cannot be
// removed.
func (s *ProjectService) RemoveMember(ctx context.Context, userID, projectID, memberID string) error {
	if _, err := s.evaluator.Require(ctx, userID, access.Ref{ProjectID: projectID}, types.RolesManage...); err != nil {
		return err
	}

	member, err := s.getProjectMember(ctx, projectID, memberID)
	if err != nil {
		return err
	}

	if member.Role == types.RoleOwner {
		return apperrors.OwnerProtected("Cannot remove the project owner")
	}

	if err := s.memberships.Remove(ctx, memberID); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

// getProjectMember loads a membership row and verifies it belongs to the
// given project, so member IDs cannot be used across projects.
func (s *ProjectService) getProjectMember(ctx context.Context, projectID, memberID string) (*types.ProjectMember, error) {
	member, err := s.memberships.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Member", memberID)
		}
		return nil, apperrors.NewDatabaseError(err)
	}
	if member.ProjectID != projectID {
		return nil, apperrors.NotFound("Member", memberID)
	}
	return member, nil
}
