package service

import (
	"context"
	"fmt"

	"housing-credit/domain"
)

// Options bundles everything Solve needs besides the household input.
type Options struct {
	Policy   Policy
	Grid     Grid
	Solver   Solver
	Rounding Rounding
}

func DefaultOptions() Options {
	return Options{
		Policy:   DefaultPolicy(),
		Grid:     DefaultGrid(),
		Solver:   ClosedFormSolver{},
		Rounding: RoundAtEmission,
	}
}

// Solve is the pure entry point: validation, affordability, search and
// schedule. Failures are recognisable with errors.Is against
// domain.ErrInvalidInput, domain.ErrInsufficientFunds,
// domain.ErrNoViableScenario and domain.ErrSolver.
func Solve(
	ctx context.Context,
	input domain.HousingInput,
	opts Options,
) (domain.FeasibleScenario, []domain.AmortizationRow, error) {
	scenario, _, err := search(ctx, input, opts)
	if err != nil {
		return domain.FeasibleScenario{}, nil, err
	}

	rows := BuildSchedule(
		scenario.LoanPrincipal,
		input.MonthlyRate(),
		scenario.TermMonths,
		scenario.MonthlyPayment,
		opts.Rounding,
	)
	return scenario, rows, nil
}

func search(ctx context.Context, input domain.HousingInput, opts Options) (domain.FeasibleScenario, SearchOutcome, error) {
	if err := validateInput(input); err != nil {
		return domain.FeasibleScenario{}, SearchOutcome{}, err
	}
	if err := opts.Grid.Validate(); err != nil {
		return domain.FeasibleScenario{}, SearchOutcome{}, err
	}
	if err := CheckAffordability(input, opts.Policy.DownPaymentRatio); err != nil {
		return domain.FeasibleScenario{}, SearchOutcome{}, err
	}

	outcome, err := NewScenarioSearch(opts.Grid, opts.Policy, opts.Solver).Search(ctx, input)
	if err != nil {
		return domain.FeasibleScenario{}, outcome, err
	}
	if !outcome.Found {
		return domain.FeasibleScenario{}, outcome, fmt.Errorf("%w: %d combinaciones evaluadas",
			domain.ErrNoViableScenario, outcome.Evaluated)
	}
	return outcome.Scenario, outcome, nil
}
