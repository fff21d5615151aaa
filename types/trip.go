package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip is one collection event within a project, with its own expected
// per-person contribution target.
type Trip struct {
	ID                      string          `json:"id"`
	ProjectID               string          `json:"projectId"`
	Name                    string          `json:"name"`
	Description             string          `json:"description,omitempty"`
	StartDate               *time.Time      `json:"startDate,omitempty"`
	EndDate                 *time.Time      `json:"endDate,omitempty"`
	TotalCost               decimal.Decimal `json:"totalCost"`
	ExpectedAmountPerPerson decimal.Decimal `json:"expectedAmountPerPerson"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

type CreateTripRequest struct {
	ProjectID               string           `json:"projectId" binding:"required"`
	Name                    string           `json:"name" binding:"required"`
	Description             string           `json:"description,omitempty"`
	StartDate               *time.Time       `json:"startDate,omitempty"`
	EndDate                 *time.Time       `json:"endDate,omitempty"`
	TotalCost               *decimal.Decimal `json:"totalCost,omitempty"`
	ExpectedAmountPerPerson *decimal.Decimal `json:"expectedAmountPerPerson,omitempty"`
}

// TripUpdate carries the fields of a trip PATCH; nil fields are left
// unchanged.
type TripUpdate struct {
	Name                    *string          `json:"name,omitempty"`
	Description             *string          `json:"description,omitempty"`
	StartDate               *time.Time       `json:"startDate,omitempty"`
	EndDate                 *time.Time       `json:"endDate,omitempty"`
	TotalCost               *decimal.Decimal `json:"totalCost,omitempty"`
	ExpectedAmountPerPerson *decimal.Decimal `json:"expectedAmountPerPerson,omitempty"`
}
