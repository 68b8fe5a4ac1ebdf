package repository

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"housing-credit/domain"
)

func samplePlan(id string, created time.Time) domain.CreditPlan {
	return domain.CreditPlan{
		ID:        id,
		CreatedAt: created,
		Input: domain.HousingInput{
			HomePrice:     300_000_000,
			MonthlyIncome: 8_000_000,
			Savings:       100_000_000,
			Subsidy:       20_000_000,
			AnnualRate:    0.12,
		},
		Scenario: domain.FeasibleScenario{
			ScenarioCandidate: domain.ScenarioCandidate{
				MonthlySavings:     100_000,
				TermMonths:         3,
				AccumulatedSavings: 300_000,
			},
			LoanPrincipal:  3000,
			MonthlyPayment: 1020,
			MonthsOfSaving: 3,
		},
		Schedule: []domain.AmortizationRow{
			{Month: 1, Payment: 1020, Interest: 30, PrincipalPortion: 990, RemainingBalance: 2010},
			{Month: 2, Payment: 1020, Interest: 20, PrincipalPortion: 1000, RemainingBalance: 1010},
			{Month: 3, Payment: 1020, Interest: 10, PrincipalPortion: 1010, RemainingBalance: 0},
		},
		TotalPaid:     3060,
		TotalInterest: 60,
	}
}

func testRepository(t *testing.T, repo PlanRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.Save(ctx, samplePlan("first", base)); err != nil {
		t.Fatalf("Save(first): %v", err)
	}
	if err := repo.Save(ctx, samplePlan("second", base.Add(time.Minute))); err != nil {
		t.Fatalf("Save(second): %v", err)
	}

	got, err := repo.Get(ctx, "first")
	if err != nil {
		t.Fatalf("Get(first): %v", err)
	}
	if got.Scenario.TermMonths != 3 || got.Scenario.LoanPrincipal != 3000 {
		t.Errorf("unexpected scenario: %+v", got.Scenario)
	}
	if len(got.Schedule) != 3 {
		t.Fatalf("len(Schedule) = %d, want 3", len(got.Schedule))
	}
	if got.Schedule[2].RemainingBalance != 0 || got.Schedule[0].Interest != 30 {
		t.Errorf("unexpected schedule: %+v", got.Schedule)
	}
	if !got.CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrPlanNotFound", err)
	}

	list, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != "second" || list[1].ID != "first" {
		t.Errorf("List order = %+v, want second, first", list)
	}

	limited, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatalf("List(1): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "second" {
		t.Errorf("List(1) = %+v", limited)
	}

	// Guardar de nuevo reemplaza sin duplicar
	if err := repo.Save(ctx, samplePlan("first", base)); err != nil {
		t.Fatalf("Save(first) again: %v", err)
	}
	list, _ = repo.List(ctx, 0)
	if len(list) != 2 {
		t.Errorf("len(List) after re-save = %d, want 2", len(list))
	}
	got, _ = repo.Get(ctx, "first")
	if len(got.Schedule) != 3 {
		t.Errorf("len(Schedule) after re-save = %d, want 3", len(got.Schedule))
	}
}

func TestPlanRepositoryMemory(t *testing.T) {
	testRepository(t, NewPlanRepositoryMemory())
}

func TestSQLitePlanRepository(t *testing.T) {
	repo, err := OpenSQLitePlanRepository(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	testRepository(t, repo)
}

func TestSQLitePlanRepository_CorruptCreatedAt(t *testing.T) {
	repo, err := OpenSQLitePlanRepository(filepath.Join(t.TempDir(), "plans.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.Save(ctx, samplePlan("bad", time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.db.ExecContext(ctx, "UPDATE plans SET created_at = 'ayer' WHERE id = 'bad'"); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Get(ctx, "bad"); err == nil || !strings.Contains(err.Error(), "created_at") {
		t.Errorf("Get err = %v, want created_at error", err)
	}
	if _, err := repo.List(ctx, 0); err == nil {
		t.Error("List should fail on a corrupt created_at")
	}
}
