package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"housing-credit/domain"
	"housing-credit/repository"
)

type MockPlanRepository struct {
	SaveCalls  int
	ForceError bool
	saved      map[string]domain.CreditPlan
}

func (m *MockPlanRepository) Save(_ context.Context, plan domain.CreditPlan) error {
	m.SaveCalls++
	if m.ForceError {
		return errors.New("save error")
	}
	if m.saved == nil {
		m.saved = make(map[string]domain.CreditPlan)
	}
	m.saved[plan.ID] = plan
	return nil
}

func (m *MockPlanRepository) Get(_ context.Context, id string) (domain.CreditPlan, error) {
	plan, ok := m.saved[id]
	if !ok {
		return domain.CreditPlan{}, domain.ErrPlanNotFound
	}
	return plan, nil
}

func (m *MockPlanRepository) List(_ context.Context, _ int) ([]domain.PlanSummary, error) {
	out := []domain.PlanSummary{}
	for _, p := range m.saved {
		out = append(out, p.Summary())
	}
	return out, nil
}

func newTestService(repo repository.PlanRepository, cache repository.CacheRepository) *HousingCreditService {
	svc := NewHousingCreditService(DefaultOptions(), repo, cache, time.Hour)
	n := 0
	svc.newID = func() string {
		n++
		return "plan-" + string(rune('0'+n))
	}
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestHousingCreditService_Solve(t *testing.T) {
	repo := &MockPlanRepository{}
	svc := newTestService(repo, nil)

	plan, err := svc.Solve(context.Background(), viableInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.ID != "plan-1" {
		t.Errorf("ID = %q, want plan-1", plan.ID)
	}
	if plan.Scenario.TermMonths != 84 || len(plan.Schedule) != 84 {
		t.Errorf("unexpected plan: term %d, %d rows", plan.Scenario.TermMonths, len(plan.Schedule))
	}
	if plan.TotalPaid <= plan.Scenario.LoanPrincipal {
		t.Errorf("TotalPaid %.0f should exceed principal %.0f", plan.TotalPaid, plan.Scenario.LoanPrincipal)
	}
	if plan.TotalInterest <= 0 {
		t.Errorf("TotalInterest = %.0f, want > 0", plan.TotalInterest)
	}
	if repo.SaveCalls != 1 {
		t.Errorf("SaveCalls = %d, want 1", repo.SaveCalls)
	}

	stored, err := svc.Plan(context.Background(), "plan-1")
	if err != nil || stored.ID != "plan-1" {
		t.Errorf("Plan(plan-1) = %q, %v", stored.ID, err)
	}
}

func TestHousingCreditService_SaveErrorIsNotFatal(t *testing.T) {
	repo := &MockPlanRepository{ForceError: true}
	svc := newTestService(repo, nil)

	if _, err := svc.Solve(context.Background(), viableInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.SaveCalls != 1 {
		t.Errorf("expected repository Save to be called")
	}
}

func TestHousingCreditService_Cache(t *testing.T) {
	repo := &MockPlanRepository{}
	cache := repository.NewMockCache()
	svc := newTestService(repo, cache)

	first, err := svc.Solve(context.Background(), viableInput())
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	second, err := svc.Solve(context.Background(), viableInput())
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("cached plan ID = %q, want %q", second.ID, first.ID)
	}
	if repo.SaveCalls != 1 {
		t.Errorf("SaveCalls = %d, want 1 (second call served from cache)", repo.SaveCalls)
	}
	if cache.Len() != 1 {
		t.Errorf("cache.Len() = %d, want 1", cache.Len())
	}

	other := viableInput()
	other.Savings = 110_000_000
	third, err := svc.Solve(context.Background(), other)
	if err != nil {
		t.Fatalf("third solve: %v", err)
	}
	if third.ID == first.ID {
		t.Error("different input must not hit the same cache entry")
	}
}

func TestHousingCreditService_Failures(t *testing.T) {
	repo := &MockPlanRepository{}
	svc := newTestService(repo, repository.NewMockCache())

	poor := viableInput()
	poor.Savings = 40_000_000
	if _, err := svc.Solve(context.Background(), poor); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Errorf("err = %v, want ErrInsufficientFunds", err)
	}

	if _, err := svc.Solve(context.Background(), unreachableInput()); !errors.Is(err, domain.ErrNoViableScenario) {
		t.Errorf("err = %v, want ErrNoViableScenario", err)
	}

	if repo.SaveCalls != 0 {
		t.Errorf("repository Save should NOT be called on failure")
	}
}

func TestHousingCreditService_NoRepository(t *testing.T) {
	svc := newTestService(nil, nil)

	if _, err := svc.Plan(context.Background(), "x"); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
	plans, err := svc.Plans(context.Background(), 10)
	if err != nil || len(plans) != 0 {
		t.Errorf("Plans = %v, %v", plans, err)
	}
}

func TestOutcomeLabel(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "found"},
		{domain.ErrInvalidInput, "invalid_input"},
		{domain.ErrInsufficientFunds, "insufficient_funds"},
		{domain.ErrNoViableScenario, "no_viable_scenario"},
		{domain.ErrSolver, "error"},
		{context.Canceled, "error"},
	}
	for _, tt := range tests {
		if got := outcomeLabel(tt.err); got != tt.want {
			t.Errorf("outcomeLabel(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
