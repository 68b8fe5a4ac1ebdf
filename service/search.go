package service

import (
	"context"
	"fmt"
	"iter"
	"math"

	"housing-credit/domain"
)

// Grid is the (monthly savings, term) lattice walked by the search. Savings
// is the outer dimension and terms the inner one, both ascending.
type Grid struct {
	SavingsStart int64
	SavingsEnd   int64
	SavingsStep  int64
	TermStart    int
	TermEnd      int
	TermStep     int
}

func DefaultGrid() Grid {
	return Grid{
		SavingsStart: SavingsStart,
		SavingsEnd:   SavingsEnd,
		SavingsStep:  SavingsStep,
		TermStart:    TermStart,
		TermEnd:      TermEnd,
		TermStep:     TermStep,
	}
}

func (g Grid) Validate() error {
	if g.SavingsStep <= 0 || g.TermStep <= 0 {
		return fmt.Errorf("%w: los pasos de la malla deben ser positivos", domain.ErrInvalidInput)
	}
	if g.SavingsStart <= 0 {
		return fmt.Errorf("%w: el ahorro mensual inicial debe ser positivo", domain.ErrInvalidInput)
	}
	if g.TermStart <= 0 {
		return fmt.Errorf("%w: el plazo inicial debe ser positivo", domain.ErrInvalidInput)
	}
	return nil
}

// Size is the number of pairs Candidates yields.
func (g Grid) Size() int {
	if g.SavingsEnd < g.SavingsStart || g.TermEnd < g.TermStart {
		return 0
	}
	savings := int((g.SavingsEnd-g.SavingsStart)/g.SavingsStep) + 1
	terms := (g.TermEnd-g.TermStart)/g.TermStep + 1
	return savings * terms
}

// Candidates yields every pair of the lattice in traversal order.
// accrualCap limits how many months of extra savings are counted.
func (g Grid) Candidates(accrualCap int) iter.Seq[domain.ScenarioCandidate] {
	return func(yield func(domain.ScenarioCandidate) bool) {
		for s := g.SavingsStart; s <= g.SavingsEnd; s += g.SavingsStep {
			for term := g.TermStart; term <= g.TermEnd; term += g.TermStep {
				monthly := float64(s)
				c := domain.ScenarioCandidate{
					MonthlySavings:     monthly,
					TermMonths:         term,
					AccumulatedSavings: monthly * float64(min(term, accrualCap)),
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Policy holds the lending rules applied to every candidate.
type Policy struct {
	DownPaymentRatio        float64
	PaymentToIncomeCap      float64
	SavingsAccrualCapMonths int
}

func DefaultPolicy() Policy {
	return Policy{
		DownPaymentRatio:        DownPaymentRatio,
		PaymentToIncomeCap:      PaymentToIncomeCap,
		SavingsAccrualCapMonths: SavingsAccrualCapMonths,
	}
}

// SearchOutcome is the tagged result of a search: Scenario is meaningful
// only when Found is true.
type SearchOutcome struct {
	Found     bool
	Scenario  domain.FeasibleScenario
	Evaluated int // pares resueltos
	Skipped   int // pares descartados por cuota inicial
}

type ScenarioSearch struct {
	grid   Grid
	policy Policy
	solver Solver
}

func NewScenarioSearch(grid Grid, policy Policy, solver Solver) *ScenarioSearch {
	if solver == nil {
		solver = ClosedFormSolver{}
	}
	return &ScenarioSearch{grid: grid, policy: policy, solver: solver}
}

// Search returns the first candidate in traversal order for which the solver
// reports an optimal loan. It assumes input already passed CheckAffordability.
func (s *ScenarioSearch) Search(ctx context.Context, input domain.HousingInput) (SearchOutcome, error) {
	var out SearchOutcome

	available := input.AvailableFunds()
	threshold := input.DownPaymentThreshold(s.policy.DownPaymentRatio)
	rate := input.MonthlyRate()

	for c := range s.grid.Candidates(s.policy.SavingsAccrualCapMonths) {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		if available+c.AccumulatedSavings < threshold {
			out.Skipped++
			continue
		}

		sol, err := s.solver.Solve(FeasibilityProblem{
			HomePrice:          input.HomePrice,
			AvailableFunds:     available,
			AccumulatedSavings: c.AccumulatedSavings,
			MonthlyIncome:      input.MonthlyIncome,
			MonthlyRate:        rate,
			TermMonths:         c.TermMonths,
			IncomeCap:          s.policy.PaymentToIncomeCap,
		})
		out.Evaluated++
		if err != nil {
			return out, err
		}
		if sol.Status != StatusOptimal {
			continue
		}

		payment, err := MonthlyPayment(sol.LoanPrincipal, rate, c.TermMonths)
		if err != nil {
			return out, err
		}

		out.Found = true
		out.Scenario = domain.FeasibleScenario{
			ScenarioCandidate: c,
			LoanPrincipal:     sol.LoanPrincipal,
			MonthlyPayment:    payment,
			MonthsOfSaving:    monthsOfSaving(input.HomePrice, available, sol.LoanPrincipal, c.MonthlySavings),
		}
		return out, nil
	}

	return out, nil
}

// monthsOfSaving is how long the household saves extra to close the gap
// left after the loan. The result is clamped at 0: when funds already exceed
// the price the raw quotient is negative and is reported as no saving months.
func monthsOfSaving(price, available, principal, monthly float64) int {
	months := math.Ceil((price - (available + principal)) / monthly)
	if months < 0 {
		return 0
	}
	return int(months)
}
