package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tahseel-app/tahseel-backend/errors"
	"github.com/tahseel-app/tahseel-backend/internal/access"
	"github.com/tahseel-app/tahseel-backend/internal/store"
	"github.com/tahseel-app/tahseel-backend/logger"
	"github.com/tahseel-app/tahseel-backend/types"
)

func init() {
	logger.IsTest = true
}

type reportFixture struct {
	projects     *MockProjectStore
	memberships  *MockMembershipStore
	trips        *MockTripStore
	participants *MockParticipantStore
	payments     *MockPaymentStore
	users        *MockUserStore
	service      *ReportService
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		projects:     &MockProjectStore{},
		memberships:  &MockMembershipStore{},
		trips:        &MockTripStore{},
		participants: &MockParticipantStore{},
		payments:     &MockPaymentStore{},
		users:        &MockUserStore{},
	}
	evaluator := access.NewEvaluator(f.memberships, f.trips, f.projects, f.users)
	f.service = NewReportService(
		f.projects, f.memberships, f.trips, f.participants, f.payments, f.users, evaluator)
	return f
}

func (f *reportFixture) memberOf(projectID, userID string, role types.Role) {
	f.memberships.On("GetByProjectAndUser", mock.Anything, projectID, userID).
		Return(&types.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}, nil)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGetTripReportBreakdown(t *testing.T) {
	f := newReportFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1", Name: "Beach trip"}, nil)
	f.memberOf("project-1", "user-1", types.RoleCollector)

	f.participants.On("ListByTrip", mock.Anything, "trip-1").Return([]types.Participant{
		{ID: "p1", TripID: "trip-1", Name: "Ali", ExpectedAmount: dec("500")},
		{ID: "p2", TripID: "trip-1", Name: "Sara", ExpectedAmount: dec("500")},
		{ID: "p3", TripID: "trip-1", Name: "Omar", ExpectedAmount: dec("500")},
	}, nil)

	// All payments come back in one batched query.
	f.payments.On("ListByParticipants", mock.Anything, []string{"p1", "p2", "p3"}).
		Return([]types.PaymentWithCollector{
			{Payment: types.Payment{ID: "pay1", ParticipantID: "p1", Amount: dec("500")}},
			{Payment: types.Payment{ID: "pay2", ParticipantID: "p2", Amount: dec("150")}},
			{Payment: types.Payment{ID: "pay3", ParticipantID: "p2", Amount: dec("50")}},
		}, nil)
	f.payments.On("CollectorTotalsByTrip", mock.Anything, "trip-1").
		Return([]types.CollectorTotal{
			{CollectorID: "c1", CollectorName: "Collector One", Total: dec("700")},
		}, nil)

	report, err := f.service.GetTripReport(context.Background(), "user-1", "trip-1")

	require.NoError(t, err)
	require.Len(t, report.Participants, 3)

	ali := report.Participants[0]
	assert.True(t, ali.PaidAmount.Equal(dec("500")))
	assert.True(t, ali.RemainingAmount.IsZero())
	assert.InDelta(t, 100.0, ali.PercentComplete, 0.0001)
	assert.Len(t, ali.Payments, 1)

	sara := report.Participants[1]
	assert.True(t, sara.PaidAmount.Equal(dec("200")))
	assert.True(t, sara.RemainingAmount.Equal(dec("300")))
	assert.InDelta(t, 40.0, sara.PercentComplete, 0.0001)
	assert.Len(t, sara.Payments, 2)

	omar := report.Participants[2]
	assert.True(t, omar.PaidAmount.IsZero())
	assert.InDelta(t, 0.0, omar.PercentComplete, 0.0001)
	assert.Empty(t, omar.Payments)

	assert.True(t, report.TotalExpected.Equal(dec("1500")))
	assert.True(t, report.TotalCollected.Equal(dec("700")))
	assert.True(t, report.TotalRemaining.Equal(dec("800")))
	assert.InDelta(t, 46.6666, report.PercentComplete, 0.001)
}

func TestGetTripReportSplitsBetweenCollectors(t *testing.T) {
	f := newReportFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "user-1", types.RoleAdmin)

	f.participants.On("ListByTrip", mock.Anything, "trip-1").Return([]types.Participant{
		{ID: "p1", TripID: "trip-1", Name: "Ali", ExpectedAmount: dec("100")},
	}, nil)

	// One participant paid off through two different collectors.
	f.payments.On("ListByParticipants", mock.Anything, []string{"p1"}).
		Return([]types.PaymentWithCollector{
			{Payment: types.Payment{ID: "pay1", ParticipantID: "p1", CollectorID: "c1", Amount: dec("25")},
				Collector: types.UserSummary{ID: "c1", Name: "Collector One"}},
			{Payment: types.Payment{ID: "pay2", ParticipantID: "p1", CollectorID: "c2", Amount: dec("75")},
				Collector: types.UserSummary{ID: "c2", Name: "Collector Two"}},
		}, nil)
	f.payments.On("CollectorTotalsByTrip", mock.Anything, "trip-1").
		Return([]types.CollectorTotal{
			{CollectorID: "c1", CollectorName: "Collector One", Total: dec("25")},
			{CollectorID: "c2", CollectorName: "Collector Two", Total: dec("75")},
		}, nil)

	report, err := f.service.GetTripReport(context.Background(), "user-1", "trip-1")

	require.NoError(t, err)
	require.Len(t, report.Participants, 1)
	ali := report.Participants[0]
	assert.True(t, ali.PaidAmount.Equal(dec("100")))
	assert.True(t, ali.RemainingAmount.IsZero())
	assert.InDelta(t, 100.0, ali.PercentComplete, 0.0001)
	assert.Len(t, ali.Payments, 2)

	require.Len(t, report.CollectorSummary, 2)
	split := decimal.Zero
	for _, total := range report.CollectorSummary {
		split = split.Add(total.Total)
	}
	assert.True(t, split.Equal(ali.ExpectedAmount))
	assert.True(t, report.TotalCollected.Equal(dec("100")))
	assert.True(t, report.TotalRemaining.IsZero())
	assert.InDelta(t, 100.0, report.PercentComplete, 0.0001)
}

func TestGetTripReportZeroExpected(t *testing.T) {
	f := newReportFixture()
	f.trips.On("GetByID", mock.Anything, "trip-1").
		Return(&types.Trip{ID: "trip-1", ProjectID: "project-1"}, nil)
	f.memberOf("project-1", "user-1", types.RoleOwner)

	f.participants.On("ListByTrip", mock.Anything, "trip-1").Return([]types.Participant{
		{ID: "p1", TripID: "trip-1", Name: "Ali", ExpectedAmount: decimal.Zero},
	}, nil)
	f.payments.On("ListByParticipants", mock.Anything, []string{"p1"}).
		Return([]types.PaymentWithCollector{
			{Payment: types.Payment{ID: "pay1", ParticipantID: "p1", Amount: dec("250")}},
		}, nil)
	f.payments.On("CollectorTotalsByTrip", mock.Anything, "trip-1").
		Return([]types.CollectorTotal{}, nil)

	report, err := f.service.GetTripReport(context.Background(), "user-1", "trip-1")

	require.NoError(t, err)
	// Collected against zero expected never divides by zero.
	assert.InDelta(t, 0.0, report.Participants[0].PercentComplete, 0.0001)
	assert.InDelta(t, 0.0, report.PercentComplete, 0.0001)
	assert.True(t, report.TotalCollected.Equal(dec("250")))
	assert.True(t, report.TotalRemaining.Equal(dec("-250")))
}

func TestGetTripReportUnknownTrip(t *testing.T) {
	f := newReportFixture()
	f.trips.On("GetByID", mock.Anything, "trip-gone").Return(nil, store.ErrNotFound)

	_, err := f.service.GetTripReport(context.Background(), "user-1", "trip-gone")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.NotFoundError, appErr.Type)
}

func TestGetProjectSummaryAggregatesTrips(t *testing.T) {
	f := newReportFixture()
	f.memberOf("project-1", "user-1", types.RoleAdmin)
	f.projects.On("GetByID", mock.Anything, "project-1").
		Return(&types.Project{ID: "project-1", Name: "Class fund"}, nil)
	f.memberships.On("ListByProject", mock.Anything, "project-1").
		Return([]types.ProjectMemberDetail{{ID: "m1", Role: types.RoleOwner}}, nil)
	f.trips.On("ListByProject", mock.Anything, "project-1").Return([]types.Trip{
		{ID: "trip-1", ProjectID: "project-1", Name: "Beach trip"},
		{ID: "trip-2", ProjectID: "project-1", Name: "Museum trip"},
	}, nil)

	f.participants.On("ListByTrip", mock.Anything, "trip-1").Return([]types.Participant{
		{ID: "p1", ExpectedAmount: dec("500")},
		{ID: "p2", ExpectedAmount: dec("500")},
	}, nil)
	f.participants.On("ListByTrip", mock.Anything, "trip-2").Return([]types.Participant{
		{ID: "p3", ExpectedAmount: dec("200")},
	}, nil)
	f.payments.On("SumByParticipants", mock.Anything, []string{"p1", "p2"}).
		Return(dec("600"), nil)
	f.payments.On("SumByParticipants", mock.Anything, []string{"p3"}).
		Return(dec("200"), nil)
	f.payments.On("CollectorTotalsByTrips", mock.Anything, []string{"trip-1", "trip-2"}).
		Return([]types.CollectorTotal{
			{CollectorID: "c1", CollectorName: "One", Total: dec("200")},
			{CollectorID: "c2", CollectorName: "Two", Total: dec("600")},
		}, nil)

	summary, err := f.service.GetProjectSummary(context.Background(), "user-1", "project-1")

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TripCount)
	require.Len(t, summary.Trips, 2)

	// Trip stats keep the listing order even though they are gathered
	// concurrently.
	assert.Equal(t, "trip-1", summary.Trips[0].ID)
	assert.True(t, summary.Trips[0].Collected.Equal(dec("600")))
	assert.True(t, summary.Trips[0].Remaining.Equal(dec("400")))
	assert.InDelta(t, 60.0, summary.Trips[0].PercentComplete, 0.0001)

	assert.Equal(t, "trip-2", summary.Trips[1].ID)
	assert.InDelta(t, 100.0, summary.Trips[1].PercentComplete, 0.0001)

	assert.True(t, summary.TotalExpected.Equal(dec("1200")))
	assert.True(t, summary.TotalCollected.Equal(dec("800")))
	assert.True(t, summary.TotalRemaining.Equal(dec("400")))
	assert.InDelta(t, 66.6666, summary.PercentComplete, 0.001)
	assert.Len(t, summary.CollectorSummary, 2)
}

func TestGetProjectSummaryEmptyProject(t *testing.T) {
	f := newReportFixture()
	f.memberOf("project-1", "user-1", types.RoleOwner)
	f.projects.On("GetByID", mock.Anything, "project-1").
		Return(&types.Project{ID: "project-1"}, nil)
	f.memberships.On("ListByProject", mock.Anything, "project-1").
		Return([]types.ProjectMemberDetail{}, nil)
	f.trips.On("ListByProject", mock.Anything, "project-1").Return([]types.Trip{}, nil)
	f.payments.On("CollectorTotalsByTrips", mock.Anything, []string{}).
		Return(nil, nil)

	summary, err := f.service.GetProjectSummary(context.Background(), "user-1", "project-1")

	require.NoError(t, err)
	assert.Equal(t, 0, summary.TripCount)
	assert.True(t, summary.TotalExpected.IsZero())
	assert.InDelta(t, 0.0, summary.PercentComplete, 0.0001)
	assert.NotNil(t, summary.CollectorSummary)
}

func TestGetProjectSummaryNonMember(t *testing.T) {
	f := newReportFixture()
	f.memberships.On("GetByProjectAndUser", mock.Anything, "project-1", "outsider").
		Return(nil, store.ErrNotFound)
	f.projects.On("GetByID", mock.Anything, "project-1").
		Return(&types.Project{ID: "project-1"}, nil)

	_, err := f.service.GetProjectSummary(context.Background(), "outsider", "project-1")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.NotMemberError, appErr.Type)
}
