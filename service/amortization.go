package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"housing-credit/domain"
)

// Rounding selects how whole-unit rounding interacts with the balance loop.
type Rounding int

const (
	// RoundAtEmission keeps the running balance in full precision and rounds
	// only the values written to each row.
	RoundAtEmission Rounding = iota
	// RoundCarried feeds the rounded balance back into the next month.
	RoundCarried
)

func ParseRounding(s string) (Rounding, error) {
	switch s {
	case "", "emit":
		return RoundAtEmission, nil
	case "carry":
		return RoundCarried, nil
	}
	return 0, fmt.Errorf("%w: modo de redondeo desconocido %q", domain.ErrInvalidInput, s)
}

// roundUnit rounds half to even, matching the rounding of the original tables.
func roundUnit(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(0).InexactFloat64()
}

// BuildSchedule simulates the loan month by month.
func BuildSchedule(principal, monthlyRate float64, termMonths int, payment float64, mode Rounding) []domain.AmortizationRow {
	if termMonths <= 0 {
		return nil
	}

	rows := make([]domain.AmortizationRow, 0, termMonths)
	balance := principal

	for month := 1; month <= termMonths; month++ {
		interest := balance * monthlyRate
		portion := payment - interest
		balance -= portion

		remaining := roundUnit(balance)
		if mode == RoundCarried {
			balance = remaining
		}

		rows = append(rows, domain.AmortizationRow{
			Month:            month,
			Payment:          roundUnit(payment),
			Interest:         roundUnit(interest),
			PrincipalPortion: roundUnit(portion),
			RemainingBalance: max(remaining, 0),
		})
	}

	return rows
}

// ScheduleTotals sums the rounded payments and interest of a schedule.
func ScheduleTotals(rows []domain.AmortizationRow) (paid, interest float64) {
	for _, r := range rows {
		paid += r.Payment
		interest += r.Interest
	}
	return paid, interest
}
