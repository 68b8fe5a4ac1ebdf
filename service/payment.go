package service

import (
	"fmt"
	"math"

	"housing-credit/domain"
)

// PaymentFactor returns the fixed monthly payment per unit of principal for
// the given monthly rate and term. The payment is affine in the principal,
// so payment = principal * factor.
func PaymentFactor(monthlyRate float64, termMonths int) (float64, error) {
	if termMonths <= 0 {
		return 0, fmt.Errorf("%w: plazo inválido (%d meses)", domain.ErrInvalidInput, termMonths)
	}
	if math.IsNaN(monthlyRate) || math.IsInf(monthlyRate, 0) || monthlyRate <= 0 {
		return 0, fmt.Errorf("%w: tasa mensual inválida (%v)", domain.ErrInvalidInput, monthlyRate)
	}

	// 1 - (1+r)^-n calculado sin cancelación para r cercano a cero
	n := float64(termMonths)
	denom := -math.Expm1(-n * math.Log1p(monthlyRate))

	return monthlyRate / denom, nil
}

// MonthlyPayment computes principal * r / (1 - (1+r)^-n).
func MonthlyPayment(principal, monthlyRate float64, termMonths int) (float64, error) {
	factor, err := PaymentFactor(monthlyRate, termMonths)
	if err != nil {
		return 0, err
	}
	return principal * factor, nil
}
