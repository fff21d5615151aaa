// Package store defines the persistence interfaces for the six core entities.
// Implementations return plain data structures; relations are fetched
// explicitly by callers, never lazily.
package store

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tahseel-app/tahseel-backend/types"
)

// UserStore handles user accounts and credential token lookups.
type UserStore interface {
	Create(ctx context.Context, user *types.User) (string, error)
	GetByID(ctx context.Context, id string) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*types.User, error)
	GetByResetToken(ctx context.Context, token string) (*types.User, error)
	Update(ctx context.Context, user *types.User) error
	SetSystemAdmin(ctx context.Context, id string, isAdmin bool) error
	List(ctx context.Context) ([]types.User, error)
	ListRecent(ctx context.Context, limit int) ([]types.User, error)
	Count(ctx context.Context) (int, error)
	// GetSummaries resolves display identities for a set of user IDs in one
	// query, for flattening references into responses.
	GetSummaries(ctx context.Context, ids []string) (map[string]types.UserSummary, error)
}

// ProjectStore handles projects. Create persists the project and its owner
// membership row in a single transaction: both commit or neither does.
type ProjectStore interface {
	Create(ctx context.Context, project *types.Project) (string, error)
	GetByID(ctx context.Context, id string) (*types.Project, error)
	ListForUser(ctx context.Context, userID string) ([]types.ProjectWithRole, error)
	Update(ctx context.Context, id string, update *types.ProjectUpdate) (*types.Project, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]types.AdminProject, error)
	Count(ctx context.Context) (int, error)
}

// MembershipStore handles project membership rows.
type MembershipStore interface {
	GetByProjectAndUser(ctx context.Context, projectID, userID string) (*types.ProjectMember, error)
	GetByID(ctx context.Context, memberID string) (*types.ProjectMember, error)
	ListByProject(ctx context.Context, projectID string) ([]types.ProjectMemberDetail, error)
	Add(ctx context.Context, member *types.ProjectMember) (string, error)
	UpdateRole(ctx context.Context, memberID string, role types.Role) (*types.ProjectMember, error)
	Remove(ctx context.Context, memberID string) error
}

// TripStore handles trips.
type TripStore interface {
	Create(ctx context.Context, trip *types.Trip) (string, error)
	GetByID(ctx context.Context, id string) (*types.Trip, error)
	ListByProject(ctx context.Context, projectID string) ([]types.Trip, error)
	Update(ctx context.Context, id string, update *types.TripUpdate) (*types.Trip, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ParticipantStore handles trip participants.
type ParticipantStore interface {
	Create(ctx context.Context, participant *types.Participant) (string, error)
	GetByID(ctx context.Context, id string) (*types.Participant, error)
	ListByTrip(ctx context.Context, tripID string) ([]types.Participant, error)
	Update(ctx context.Context, id string, update *types.ParticipantUpdate, updatedBy string) (*types.Participant, error)
	Delete(ctx context.Context, id string) error
}

// PaymentStore handles payments and their aggregates. Per-scope aggregates
// (sums, collector totals) are computed by the database, batched per trip
// rather than queried per participant.
type PaymentStore interface {
	Create(ctx context.Context, payment *types.Payment) (string, error)
	GetByID(ctx context.Context, id string) (*types.Payment, error)
	ListByTrip(ctx context.Context, tripID string) ([]types.PaymentDetail, error)
	ListByParticipant(ctx context.Context, participantID string) ([]types.PaymentWithCollector, error)
	ListByParticipants(ctx context.Context, participantIDs []string) ([]types.PaymentWithCollector, error)
	SumByParticipant(ctx context.Context, participantID string) (decimal.Decimal, error)
	SumByParticipants(ctx context.Context, participantIDs []string) (decimal.Decimal, error)
	CollectorTotalsByTrip(ctx context.Context, tripID string) ([]types.CollectorTotal, error)
	CollectorTotalsByTrips(ctx context.Context, tripIDs []string) ([]types.CollectorTotal, error)
	Update(ctx context.Context, id string, update *types.PaymentUpdate) (*types.Payment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
