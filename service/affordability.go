package service

import (
	"fmt"

	"housing-credit/domain"
)

// CheckAffordability fails with domain.ErrInsufficientFunds when savings plus
// subsidy do not reach the down payment threshold.
func CheckAffordability(input domain.HousingInput, ratio float64) error {
	threshold := input.DownPaymentThreshold(ratio)
	available := input.AvailableFunds()
	if available < threshold {
		return fmt.Errorf("%w: aporte de %.0f, se requieren al menos %.0f",
			domain.ErrInsufficientFunds, available, threshold)
	}
	return nil
}

// validateInput rejects values that would fault the payment model.
func validateInput(input domain.HousingInput) error {
	if !input.Finite() {
		return fmt.Errorf("%w: valores no numéricos", domain.ErrInvalidInput)
	}
	if input.AnnualRate <= 0 {
		return fmt.Errorf("%w: la tasa anual debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}
