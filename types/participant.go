package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Participant is a person expected to pay into a trip. Participants are not
// platform users; CreatedBy/UpdatedBy reference the accounts that manage the
// record.
type Participant struct {
	ID             string          `json:"id"`
	TripID         string          `json:"tripId"`
	Name           string          `json:"name"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	CreatedBy      *string         `json:"-"`
	UpdatedBy      *string         `json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ParticipantWithTotals is a participant with derived payment totals. Totals
// are always computed from the payment rows, never stored.
type ParticipantWithTotals struct {
	Participant
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedByUser *UserSummary    `json:"createdByUser,omitempty"`
	UpdatedByUser *UserSummary    `json:"updatedByUser,omitempty"`
}

// ParticipantDetail additionally carries the full payment list.
type ParticipantDetail struct {
	ParticipantWithTotals
	Payments []PaymentWithCollector `json:"payments"`
}

type CreateParticipantRequest struct {
	TripID         string           `json:"tripId" binding:"required"`
	Name           string           `json:"name" binding:"required"`
	Phone          *string          `json:"phone,omitempty"`
	Email          *string          `json:"email,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty"`
}

// ParticipantUpdate carries the fields of a participant PATCH; nil fields are
// left unchanged.
type ParticipantUpdate struct {
	Name           *string          `json:"name,omitempty"`
	Phone          *string          `json:"phone,omitempty"`
	Email          *string          `json:"email,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty"`
}
