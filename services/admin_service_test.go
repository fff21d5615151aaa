package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

type adminFixture struct {
	users       *MockUserStore
	projects    *MockProjectStore
	trips       *MockTripStore
	payments    *MockPaymentStore
	memberships *MockMembershipStore
	service     *AdminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		users:       &MockUserStore{},
		projects:    &MockProjectStore{},
		trips:       &MockTripStore{},
		payments:    &MockPaymentStore{},
		memberships: &MockMembershipStore{},
	}
	evaluator := access.NewEvaluator(f.memberships, f.trips, f.projects, f.users)
	f.service = NewAdminService(f.users, f.projects, f.trips, f.payments, evaluator)
	return f
}

func (f *adminFixture) systemAdmin(userID string) {
	f.users.On("GetByID", mock.Anything, userID).
		Return(&types.User{ID: userID, IsSystemAdmin: true}, nil)
}

func (f *adminFixture) regularUser(userID string) {
	f.users.On("GetByID", mock.Anything, userID).
		Return(&types.User{ID: userID}, nil)
}

func TestAdminListUsersRequiresSystemAdmin(t *testing.T) {
	f := newAdminFixture()
	f.regularUser("user-1")

	_, err := f.service.ListUsers(context.Background(), "user-1")

	requireErrorType(t, err, apperrors.RoleError)
	f.users.AssertNotCalled(t, "List", mock.Anything)
}

func TestAdminListUsers(t *testing.T) {
	f := newAdminFixture()
	f.systemAdmin("admin-1")
	f.users.On("List", mock.Anything).Return([]types.User{
		{ID: "user-1", Name: "Ali"},
		{ID: "user-2", Name: "Sara"},
	}, nil)

	users, err := f.service.ListUsers(context.Background(), "admin-1")

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestAdminStats(t *testing.T) {
	f := newAdminFixture()
	f.systemAdmin("admin-1")
	f.users.On("Count", mock.Anything).Return(12, nil)
	f.projects.On("Count", mock.Anything).Return(3, nil)
	f.trips.On("Count", mock.Anything).Return(7, nil)
	f.payments.On("Count", mock.Anything).Return(42, nil)
	f.users.On("ListRecent", mock.Anything, recentUserLimit).Return([]types.User{
		{ID: "user-12", Name: "Newest"},
	}, nil)

	stats, err := f.service.Stats(context.Background(), "admin-1")

	require.NoError(t, err)
	assert.Equal(t, 12, stats.UserCount)
	assert.Equal(t, 3, stats.ProjectCount)
	assert.Equal(t, 7, stats.TripCount)
	assert.Equal(t, 42, stats.PaymentCount)
	require.Len(t, stats.RecentUsers, 1)
	assert.Equal(t, "user-12", stats.RecentUsers[0].ID)
}

func TestAdminSetSystemAdmin(t *testing.T) {
	f := newAdminFixture()
	f.systemAdmin("admin-1")
	f.users.On("SetSystemAdmin", mock.Anything, "user-2", true).Return(nil)

	err := f.service.SetSystemAdmin(context.Background(), "admin-1", "user-2", true)

	require.NoError(t, err)
	f.users.AssertExpectations(t)
}

func TestAdminCannotRevokeOwnAccess(t *testing.T) {
	f := newAdminFixture()
	f.systemAdmin("admin-1")

	err := f.service.SetSystemAdmin(context.Background(), "admin-1", "admin-1", false)

	requireErrorType(t, err, apperrors.ValidationError)
	f.users.AssertNotCalled(t, "SetSystemAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminSetSystemAdminUnknownTarget(t *testing.T) {
	f := newAdminFixture()
	f.systemAdmin("admin-1")
	f.users.On("SetSystemAdmin", mock.Anything, "ghost", true).Return(store.ErrNotFound)

	err := f.service.SetSystemAdmin(context.Background(), "admin-1", "ghost", true)

	requireErrorType(t, err, apperrors.NotFoundError)
}
