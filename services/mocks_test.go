package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

// Canonical store mocks for service tests. Do not redeclare in other test
// files.

type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *types.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) GetByVerificationToken(ctx context.Context, token string) (*types.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) GetByResetToken(ctx context.Context, token string) (*types.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) SetSystemAdmin(ctx context.Context, id string, isAdmin bool) error {
	args := m.Called(ctx, id, isAdmin)
	return args.Error(0)
}

func (m *MockUserStore) List(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserStore) ListRecent(ctx context.Context, limit int) ([]types.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) GetSummaries(ctx context.Context, ids []string) (map[string]types.UserSummary, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]types.UserSummary), args.Error(1)
}

type MockProjectStore struct {
	mock.Mock
}

var _ store.ProjectStore = (*MockProjectStore)(nil)

func (m *MockProjectStore) Create(ctx context.Context, project *types.Project) (string, error) {
	args := m.Called(ctx, project)
	return args.String(0), args.Error(1)
}

func (m *MockProjectStore) GetByID(ctx context.Context, id string) (*types.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Project), args.Error(1)
}

func (m *MockProjectStore) ListForUser(ctx context.Context, userID string) ([]types.ProjectWithRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ProjectWithRole), args.Error(1)
}

func (m *MockProjectStore) Update(ctx context.Context, id string, update *types.ProjectUpdate) (*types.Project, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Project), args.Error(1)
}

func (m *MockProjectStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectStore) ListAll(ctx context.Context) ([]types.AdminProject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.AdminProject), args.Error(1)
}

func (m *MockProjectStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockMembershipStore struct {
	mock.Mock
}

var _ store.MembershipStore = (*MockMembershipStore)(nil)

func (m *MockMembershipStore) GetByProjectAndUser(ctx context.Context, projectID, userID string) (*types.ProjectMember, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProjectMember), args.Error(1)
}

func (m *MockMembershipStore) GetByID(ctx context.Context, memberID string) (*types.ProjectMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProjectMember), args.Error(1)
}

func (m *MockMembershipStore) ListByProject(ctx context.Context, projectID string) ([]types.ProjectMemberDetail, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ProjectMemberDetail), args.Error(1)
}

func (m *MockMembershipStore) Add(ctx context.Context, member *types.ProjectMember) (string, error) {
	args := m.Called(ctx, member)
	return args.String(0), args.Error(1)
}

func (m *MockMembershipStore) UpdateRole(ctx context.Context, memberID string, role types.Role) (*types.ProjectMember, error) {
	args := m.Called(ctx, memberID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ProjectMember), args.Error(1)
}

func (m *MockMembershipStore) Remove(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

type MockTripStore struct {
	mock.Mock
}

var _ store.TripStore = (*MockTripStore)(nil)

func (m *MockTripStore) Create(ctx context.Context, trip *types.Trip) (string, error) {
	args := m.Called(ctx, trip)
	return args.String(0), args.Error(1)
}

func (m *MockTripStore) GetByID(ctx context.Context, id string) (*types.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockTripStore) ListByProject(ctx context.Context, projectID string) ([]types.Trip, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Trip), args.Error(1)
}

func (m *MockTripStore) Update(ctx context.Context, id string, update *types.TripUpdate) (*types.Trip, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Trip), args.Error(1)
}

func (m *MockTripStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockParticipantStore struct {
	mock.Mock
}

var _ store.ParticipantStore = (*MockParticipantStore)(nil)

func (m *MockParticipantStore) Create(ctx context.Context, participant *types.Participant) (string, error) {
	args := m.Called(ctx, participant)
	return args.String(0), args.Error(1)
}

func (m *MockParticipantStore) GetByID(ctx context.Context, id string) (*types.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Participant), args.Error(1)
}

func (m *MockParticipantStore) ListByTrip(ctx context.Context, tripID string) ([]types.Participant, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Participant), args.Error(1)
}

func (m *MockParticipantStore) Update(ctx context.Context, id string, update *types.ParticipantUpdate, updatedBy string) (*types.Participant, error) {
	args := m.Called(ctx, id, update, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Participant), args.Error(1)
}

func (m *MockParticipantStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentStore struct {
	mock.Mock
}

var _ store.PaymentStore = (*MockPaymentStore)(nil)

func (m *MockPaymentStore) Create(ctx context.Context, payment *types.Payment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentStore) GetByID(ctx context.Context, id string) (*types.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Payment), args.Error(1)
}

func (m *MockPaymentStore) ListByTrip(ctx context.Context, tripID string) ([]types.PaymentDetail, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PaymentDetail), args.Error(1)
}

func (m *MockPaymentStore) ListByParticipant(ctx context.Context, participantID string) ([]types.PaymentWithCollector, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PaymentWithCollector), args.Error(1)
}

func (m *MockPaymentStore) ListByParticipants(ctx context.Context, participantIDs []string) ([]types.PaymentWithCollector, error) {
	args := m.Called(ctx, participantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PaymentWithCollector), args.Error(1)
}

func (m *MockPaymentStore) SumByParticipant(ctx context.Context, participantID string) (decimal.Decimal, error) {
	args := m.Called(ctx, participantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentStore) SumByParticipants(ctx context.Context, participantIDs []string) (decimal.Decimal, error) {
	args := m.Called(ctx, participantIDs)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentStore) CollectorTotalsByTrip(ctx context.Context, tripID string) ([]types.CollectorTotal, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CollectorTotal), args.Error(1)
}

func (m *MockPaymentStore) CollectorTotalsByTrips(ctx context.Context, tripIDs []string) ([]types.CollectorTotal, error) {
	args := m.Called(ctx, tripIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CollectorTotal), args.Error(1)
}

func (m *MockPaymentStore) Update(ctx context.Context, id string, update *types.PaymentUpdate) (*types.Payment, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Payment), args.Error(1)
}

func (m *MockPaymentStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockEmailSender records outgoing mail for auth service tests.
type MockEmailSender struct {
	mock.Mock
}

var _ EmailSender = (*MockEmailSender)(nil)

func (m *MockEmailSender) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	args := m.Called(ctx, to, name, token)
	return args.Error(0)
}

func (m *MockEmailSender) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	args := m.Called(ctx, to, name, token)
	return args.Error(0)
}
