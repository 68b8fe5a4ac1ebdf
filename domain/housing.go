package domain

import (
	"math"
	"time"
)

// DefaultAnnualRate is used by input collectors when no rate is provided.
const DefaultAnnualRate = 0.12

// HousingInput holds what a household brings to the purchase.
type HousingInput struct {
	HomePrice     float64 `json:"home_price"`
	MonthlyIncome float64 `json:"monthly_income"`
	Savings       float64 `json:"savings"`
	Subsidy       float64 `json:"subsidy"`
	AnnualRate    float64 `json:"annual_rate"`
}

func (in HousingInput) MonthlyRate() float64 {
	return in.AnnualRate / 12
}

// AvailableFunds counts subsidy the same as savings.
func (in HousingInput) AvailableFunds() float64 {
	return in.Savings + in.Subsidy
}

func (in HousingInput) DownPaymentThreshold(ratio float64) float64 {
	return ratio * in.HomePrice
}

// Finite reports whether every field is a real number.
func (in HousingInput) Finite() bool {
	for _, v := range []float64{in.HomePrice, in.MonthlyIncome, in.Savings, in.Subsidy, in.AnnualRate} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type ScenarioCandidate struct {
	MonthlySavings     float64 `json:"monthly_savings"`
	TermMonths         int     `json:"term_months"`
	AccumulatedSavings float64 `json:"accumulated_savings"`
}

type FeasibleScenario struct {
	ScenarioCandidate
	LoanPrincipal  float64 `json:"loan_principal"`
	MonthlyPayment float64 `json:"monthly_payment"`
	MonthsOfSaving int     `json:"months_of_saving"`
}

type AmortizationRow struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	PrincipalPortion float64 `json:"principal_portion"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// CreditPlan is the full answer handed to presentation and export.
type CreditPlan struct {
	ID            string            `json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	Input         HousingInput      `json:"input"`
	Scenario      FeasibleScenario  `json:"scenario"`
	Schedule      []AmortizationRow `json:"schedule"`
	TotalPaid     float64           `json:"total_paid"`
	TotalInterest float64           `json:"total_interest"`
}

func (p CreditPlan) Summary() PlanSummary {
	return PlanSummary{
		ID:             p.ID,
		CreatedAt:      p.CreatedAt,
		HomePrice:      p.Input.HomePrice,
		MonthlySavings: p.Scenario.MonthlySavings,
		TermMonths:     p.Scenario.TermMonths,
		LoanPrincipal:  p.Scenario.LoanPrincipal,
		MonthlyPayment: p.Scenario.MonthlyPayment,
	}
}

type PlanSummary struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	HomePrice      float64   `json:"home_price"`
	MonthlySavings float64   `json:"monthly_savings"`
	TermMonths     int       `json:"term_months"`
	LoanPrincipal  float64   `json:"loan_principal"`
	MonthlyPayment float64   `json:"monthly_payment"`
}
