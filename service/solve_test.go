package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"housing-credit/domain"
)

func TestSolve_InsufficientFunds(t *testing.T) {
	in := viableInput()
	in.Savings = 40_000_000 // 60M disponibles < 90M de cuota inicial

	solver := &countingSolver{inner: ClosedFormSolver{}}
	opts := DefaultOptions()
	opts.Solver = solver

	_, rows, err := Solve(context.Background(), in, opts)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if rows != nil {
		t.Errorf("expected no schedule, got %d rows", len(rows))
	}
	if solver.calls != 0 {
		t.Errorf("search ran %d solver calls, want 0", solver.calls)
	}
}

func TestSolve_Found(t *testing.T) {
	scenario, rows, err := Solve(context.Background(), viableInput(), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scenario.TermMonths != 84 || scenario.LoanPrincipal != 171_600_000 {
		t.Errorf("scenario = %+v", scenario)
	}
	if len(rows) != scenario.TermMonths {
		t.Errorf("len(rows) = %d, want %d", len(rows), scenario.TermMonths)
	}
	if rows[len(rows)-1].RemainingBalance != 0 {
		t.Errorf("final balance = %.0f, want 0", rows[len(rows)-1].RemainingBalance)
	}
}

func TestSolve_NoViableScenario(t *testing.T) {
	in := unreachableInput()

	_, _, err := Solve(context.Background(), in, DefaultOptions())
	if !errors.Is(err, domain.ErrNoViableScenario) {
		t.Fatalf("err = %v, want ErrNoViableScenario", err)
	}
	if errors.Is(err, domain.ErrInsufficientFunds) {
		t.Error("failures must be distinguishable")
	}
}

func TestSolve_InvalidRate(t *testing.T) {
	for _, rate := range []float64{0, -0.05} {
		in := viableInput()
		in.AnnualRate = rate

		_, _, err := Solve(context.Background(), in, DefaultOptions())
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("rate %v: err = %v, want ErrInvalidInput", rate, err)
		}
	}
}

func TestSolve_InvalidGrid(t *testing.T) {
	opts := DefaultOptions()
	opts.Grid.TermStep = 0

	_, _, err := Solve(context.Background(), viableInput(), opts)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestSolve_Deterministic(t *testing.T) {
	s1, r1, err := Solve(context.Background(), viableInput(), DefaultOptions())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	s2, r2, err := Solve(context.Background(), viableInput(), DefaultOptions())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if s1 != s2 {
		t.Errorf("scenarios differ: %+v vs %+v", s1, s2)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Error("schedules differ between runs")
	}
}

func TestCheckAffordability(t *testing.T) {
	in := viableInput()
	in.Savings, in.Subsidy = 70_000_000, 20_000_000 // exactamente 30%

	if err := CheckAffordability(in, DownPaymentRatio); err != nil {
		t.Errorf("threshold met exactly should pass, got %v", err)
	}

	in.Subsidy = 19_999_999
	if err := CheckAffordability(in, DownPaymentRatio); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}
}
