package types

import "github.com/shopspring/decimal"

// TripStat is the per-trip line of a project summary.
type TripStat struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Expected        decimal.Decimal `json:"expected"`
	Collected       decimal.Decimal `json:"collected"`
	Remaining       decimal.Decimal `json:"remainingAmount"`
	PercentComplete float64         `json:"percentComplete"`
}

// CollectorTotal is one collector's aggregate across the report's scope.
// Returned unsorted; ordering is a presentation concern.
type CollectorTotal struct {
	CollectorID   string          `json:"collectorId"`
	CollectorName string          `json:"collectorName"`
	Total         decimal.Decimal `json:"total"`
}

// ProjectSummary is the project-level financial report.
type ProjectSummary struct {
	Project          *Project              `json:"project"`
	Members          []ProjectMemberDetail `json:"members"`
	TripCount        int                   `json:"tripCount"`
	Trips            []TripStat            `json:"trips"`
	TotalExpected    decimal.Decimal       `json:"totalExpected"`
	TotalCollected   decimal.Decimal       `json:"totalCollected"`
	TotalRemaining   decimal.Decimal       `json:"totalRemainingAmount"`
	PercentComplete  float64               `json:"percentComplete"`
	CollectorSummary []CollectorTotal      `json:"collectorSummary"`
}

// ParticipantReport is the per-participant breakdown of a trip report.
type ParticipantReport struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	ExpectedAmount  decimal.Decimal        `json:"expectedAmount"`
	PaidAmount      decimal.Decimal        `json:"paidAmount"`
	RemainingAmount decimal.Decimal        `json:"remainingAmount"`
	PercentComplete float64                `json:"percentComplete"`
	Payments        []PaymentWithCollector `json:"payments"`
	CreatedByUser   *UserSummary           `json:"createdByUser,omitempty"`
	UpdatedByUser   *UserSummary           `json:"updatedByUser,omitempty"`
}

// TripReport is the trip-level financial report.
type TripReport struct {
	Trip             *Trip               `json:"trip"`
	Participants     []ParticipantReport `json:"participants"`
	TotalExpected    decimal.Decimal     `json:"totalExpected"`
	TotalCollected   decimal.Decimal     `json:"totalCollected"`
	TotalRemaining   decimal.Decimal     `json:"totalRemainingAmount"`
	PercentComplete  float64             `json:"percentComplete"`
	CollectorSummary []CollectorTotal    `json:"collectorSummary"`
}

// PercentComplete computes collected/expected as a percentage. Defined as 0
// when expected is not positive, so it never yields NaN or Inf. Intermediate
// decimal totals keep full precision; the float conversion happens only here,
// at the reporting boundary.
func PercentComplete(collected, expected decimal.Decimal) float64 {
	if !expected.IsPositive() {
		return 0
	}
	ratio, _ := collected.Div(expected).Float64()
	return ratio * 100
}
