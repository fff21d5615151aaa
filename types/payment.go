package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a recorded contribution from a participant. TripID is
// denormalized from the participant row on every write path and never taken
// from the client.
type Payment struct {
	ID            string          `json:"id"`
	ParticipantID string          `json:"participantId"`
	TripID        string          `json:"tripId"`
	CollectorID   string          `json:"collectorId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PaymentWithCollector flattens the collector's identity into the payment.
type PaymentWithCollector struct {
	Payment
	Collector UserSummary `json:"collector"`
}

// PaymentDetail flattens both the collector and the participant identities.
type PaymentDetail struct {
	Payment
	Collector   UserSummary `json:"collector"`
	Participant UserSummary `json:"participant"`
}

type CreatePaymentRequest struct {
	ParticipantID string          `json:"participantId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

// PaymentUpdate carries the fields of a payment PATCH; nil fields are left
// unchanged.
type PaymentUpdate struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	PaymentDate *time.Time       `json:"paymentDate,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}
