package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	apperrors "github.com/tahseel-app/tahseel-backend/errors"
)

// validateAmount rejects negative amounts and amounts with more than two
// fractional digits. Amounts are never silently coerced.
func validateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperrors.ValidationFailed(
			fmt.Sprintf("%s cannot be negative", field),
			amount.String(),
		)
	}
	if amount.Exponent() < -2 {
		return apperrors.ValidationFailed(
			fmt.Sprintf("%s cannot have more than 2 decimal places", field),
			amount.String(),
		)
	}
	return nil
}

// validateDateRange rejects ranges that end before they start. Either bound
// may be nil.
func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.ValidationFailed("End date cannot be before start date", "")
	}
	return nil
}

// validatePositiveAmount additionally rejects zero, for payment amounts.
func validatePositiveAmount(field string, amount decimal.Decimal) error {
	if err := validateAmount(field, amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return apperrors.ValidationFailed(
			fmt.Sprintf("%s must be greater than zero", field),
			amount.String(),
		)
	}
	return nil
}
