package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/types"
)

type tripFixture struct {
	trips       *MockTripStore
	memberships *MockMembershipStore
	projects    *MockProjectStore
	users       *MockUserStore
	service     *TripService
}

func newTripFixture() *tripFixture {
	f := &tripFixture{
		trips:       &MockTripStore{},
		memberships: &MockMembershipStore{},
		projects:    &MockProjectStore{},
		users:       &MockUserStore{},
	}
	evaluator := access.NewEvaluator(f.memberships, f.trips, f.projects, f.users)
	f.service = NewTripService(f.trips, evaluator)
	return f
}

func (f *tripFixture) memberOf(projectID, userID string, role types.Role) {
	f.memberships.On("GetByProjectAndUser", mock.Anything, projectID, userID).
		Return(&types.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}, nil)
}

func TestTripCreate(t *testing.T) {
	f := newTripFixture()
	f.memberOf("project-1", "admin-1", types.RoleAdmin)

	cost := dec("1500")
	perPerson := dec("500")
	f.trips.On("Create", mock.Anything, mock.MatchedBy(func(tr *types.Trip) bool {
		return tr.ProjectID == "project-1" &&
			tr.Name == "Beach trip" &&
			tr.TotalCost.Equal(cost) &&
			tr.ExpectedAmountPerPerson.Equal(perPerson)
	})).Return("trip-1", nil)
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1", Name: "Beach trip"}, nil)

	trip, err := f.service.Create(context.Background(), "admin-1", &types.CreateTripRequest{
		ProjectID:               "project-1",
		Name:                    "Beach trip",
		TotalCost:               &cost,
		ExpectedAmountPerPerson: &perPerson,
	})

	require.NoError(t, err)
	assert.Equal(t, "trip-1", trip.ID)
	f.trips.AssertExpectations(t)
}

func TestTripCreateCollectorForbidden(t *testing.T) {
	f := newTripFixture()
	f.memberOf("project-1", "collector-1", types.RoleCollector)

	_, err := f.service.Create(context.Background(), "collector-1", &types.CreateTripRequest{
		ProjectID: "project-1",
		Name:      "Beach trip",
	})

	requireErrorType(t, err, apperrors.RoleError)
	f.trips.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTripCreateNegativeCost(t *testing.T) {
	f := newTripFixture()
	f.memberOf("project-1", "owner-1", types.RoleOwner)

	cost := dec("-100")
	_, err := f.service.Create(context.Background(), "owner-1", &types.CreateTripRequest{
		ProjectID: "project-1",
		Name:      "Beach trip",
		TotalCost: &cost,
	})

	requireErrorType(t, err, apperrors.ValidationError)
}

func TestTripCreateEndBeforeStart(t *testing.T) {
	f := newTripFixture()
	f.memberOf("project-1", "owner-1", types.RoleOwner)

	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -3)
	_, err := f.service.Create(context.Background(), "owner-1", &types.CreateTripRequest{
		ProjectID: "project-1",
		Name:      "Beach trip",
		StartDate: &start,
		EndDate:   &end,
	})

	requireErrorType(t, err, apperrors.ValidationError)
	f.trips.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTripGetReturnsCallerRole(t *testing.T) {
	f := newTripFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1", Name: "Beach trip"}, nil)
	f.memberOf("project-1", "collector-1", types.RoleCollector)

	trip, role, err := f.service.Get(context.Background(), "collector-1", "trip-1")

	require.NoError(t, err)
	assert.Equal(t, "trip-1", trip.ID)
	assert.Equal(t, types.RoleCollector, role)
}

func TestTripUpdateCollectorForbidden(t *testing.T) {
	f := newTripFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "collector-1", types.RoleCollector)

	name := "Renamed"
	_, err := f.service.Update(context.Background(), "collector-1", "trip-1", &types.TripUpdate{Name: &name})

	requireErrorType(t, err, apperrors.RoleError)
	f.trips.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTripUpdateRejectsThreeDecimalPlaces(t *testing.T) {
	f := newTripFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "admin-1", types.RoleAdmin)

	cost := decimal.RequireFromString("100.125")
	_, err := f.service.Update(context.Background(), "admin-1", "trip-1", &types.TripUpdate{TotalCost: &cost})

	requireErrorType(t, err, apperrors.ValidationError)
}

func TestTripUpdateEmptyName(t *testing.T) {
	f := newTripFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "admin-1", types.RoleAdmin)

	name := ""
	_, err := f.service.Update(context.Background(), "admin-1", "trip-1", &types.TripUpdate{Name: &name})

	requireErrorType(t, err, apperrors.ValidationError)
}

func TestTripDeleteCollectorForbidden(t *testing.T) {
	f := newTripFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "collector-1", types.RoleCollector)

	err := f.service.Delete(context.Background(), "collector-1", "trip-1")

	requireErrorType(t, err, apperrors.RoleError)
	f.trips.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTripDeleteByAdmin(t *testing.T) {
	f := newTripFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "admin-1", types.RoleAdmin)
	f.trips.On("Delete", mock.Anything, "trip-1").Return(nil)

	err := f.service.Delete(context.Background(), "admin-1", "trip-1")

	require.NoError(t, err)
	f.trips.AssertExpectations(t)
}

func TestTripListUnknownProject(t *testing.T) {
	f := newTripFixture()
	f.memberships.On("GetByProjectAndUser", mock.Anything, "project-gone", "user-1").
		Return(nil, store.ErrNotFound)
	f.projects.On("GetByID", mock.Anything, "project-gone").Return(nil, store.ErrNotFound)

	_, err := f.service.ListByProject(context.Background(), "user-1", "project-gone")

	requireErrorType(t, err, apperrors.NotFoundError)
}
