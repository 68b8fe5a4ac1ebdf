package service

import (
	"fmt"
	"math"

	"housing-credit/domain"
)

type SolveStatus int

const (
	StatusInfeasible SolveStatus = iota
	StatusOptimal
)

func (s SolveStatus) String() string {
	if s == StatusOptimal {
		return "optimal"
	}
	return "infeasible"
}

// FeasibilityProblem is one (monthly savings, term) pair to evaluate.
type FeasibilityProblem struct {
	HomePrice          float64
	AvailableFunds     float64
	AccumulatedSavings float64
	MonthlyIncome      float64
	MonthlyRate        float64
	TermMonths         int
	IncomeCap          float64 // fracción del ingreso, ej. 0.40
}

// Shortfall is the smallest principal that covers the home price.
func (p FeasibilityProblem) Shortfall() float64 {
	return math.Max(0, p.HomePrice-p.AvailableFunds-p.AccumulatedSavings)
}

func (p FeasibilityProblem) PaymentCap() float64 {
	return p.IncomeCap * p.MonthlyIncome
}

type Solution struct {
	Status        SolveStatus
	LoanPrincipal float64
}

// Solver finds the minimal loan principal for a FeasibilityProblem.
type Solver interface {
	Solve(p FeasibilityProblem) (Solution, error)
}

// ClosedFormSolver uses the fact that the payment grows linearly with the
// principal: if the shortfall is affordable it is the optimum, otherwise no
// larger principal can be.
type ClosedFormSolver struct{}

func (ClosedFormSolver) Solve(p FeasibilityProblem) (Solution, error) {
	factor, err := PaymentFactor(p.MonthlyRate, p.TermMonths)
	if err != nil {
		return Solution{}, err
	}

	shortfall := p.Shortfall()
	if shortfall*factor > p.PaymentCap() {
		return Solution{Status: StatusInfeasible}, nil
	}
	return Solution{Status: StatusOptimal, LoanPrincipal: shortfall}, nil
}

// NewSolver returns the solver registered under kind.
func NewSolver(kind string) (Solver, error) {
	switch kind {
	case "", "closed_form":
		return ClosedFormSolver{}, nil
	case "simplex":
		return SimplexSolver{Tolerance: simplexTolerance}, nil
	}
	return nil, fmt.Errorf("%w: solver desconocido %q", domain.ErrInvalidInput, kind)
}
