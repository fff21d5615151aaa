package handlers

import (
	"context"

	"github.com/tahseel-app/tahseel-backend/types"
)

// Service interfaces consumed by the handlers. Handlers depend on these
// rather than the concrete services so tests can substitute mocks.

type AuthServiceInterface interface {
	Signup(ctx context.Context, req *types.SignupRequest) (*types.User, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	GetMe(ctx context.Context, userID string) (*types.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, req *types.ResetPasswordRequest) error
}

type ProjectServiceInterface interface {
	Create(ctx context.Context, userID string, req *types.CreateProjectRequest) (*types.Project, error)
	Get(ctx context.Context, userID, projectID string) (*types.Project, types.Role, error)
	ListForUser(ctx context.Context, userID string) ([]types.ProjectWithRole, error)
	Update(ctx context.Context, userID, projectID string, update *types.ProjectUpdate) (*types.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
	ListMembers(ctx context.Context, userID, projectID string) ([]types.ProjectMemberDetail, error)
	AddMember(ctx context.Context, userID, projectID string, req *types.AddMemberRequest) (*types.ProjectMemberDetail, error)
	UpdateMemberRole(ctx context.Context, userID, projectID, memberID string, role types.Role) (*types.ProjectMember, error)
	RemoveMember(ctx context.Context, userID, projectID, memberID string) error
}

type TripServiceInterface interface {
	Create(ctx context.Context, userID string, req *types.CreateTripRequest) (*types.Trip, error)
	ListByProject(ctx context.Context, userID, projectID string) ([]types.Trip, error)
	Get(ctx context.Context, userID, tripID string) (*types.Trip, types.Role, error)
	Update(ctx context.Context, userID, tripID string, update *types.TripUpdate) (*types.Trip, error)
	Delete(ctx context.Context, userID, tripID string) error
}

type ParticipantServiceInterface interface {
	Create(ctx context.Context, userID string, req *types.CreateParticipantRequest) (*types.Participant, error)
	ListByTrip(ctx context.Context, userID, tripID string) ([]types.ParticipantWithTotals, error)
	Get(ctx context.Context, userID, participantID string) (*types.ParticipantDetail, error)
	Update(ctx context.Context, userID, participantID string, update *types.ParticipantUpdate) (*types.Participant, error)
	Delete(ctx context.Context, userID, participantID string) error
}

type PaymentServiceInterface interface {
	Create(ctx context.Context, userID string, req *types.CreatePaymentRequest) (*types.Payment, error)
	ListByTrip(ctx context.Context, userID, tripID string) ([]types.PaymentDetail, error)
	Get(ctx context.Context, userID, paymentID string) (*types.Payment, error)
	Update(ctx context.Context, userID, paymentID string, update *types.PaymentUpdate) (*types.Payment, error)
	Delete(ctx context.Context, userID, paymentID string) error
}

type ReportServiceInterface interface {
	GetProjectSummary(ctx context.Context, userID, projectID string) (*types.ProjectSummary, error)
	GetTripReport(ctx context.Context, userID, tripID string) (*types.TripReport, error)
}

type AdminServiceInterface interface {
	ListUsers(ctx context.Context, userID string) ([]types.User, error)
	ListProjects(ctx context.Context, userID string) ([]types.AdminProject, error)
	Stats(ctx context.Context, userID string) (*types.SystemStats, error)
	SetSystemAdmin(ctx context.Context, userID, targetID string, isAdmin bool) error
}
