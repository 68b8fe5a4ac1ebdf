package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"housing-credit/domain"
	"housing-credit/metrics"
	"housing-credit/repository"
)

type HousingCreditService struct {
	opts     Options
	repo     repository.PlanRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

// NewHousingCreditService creates a HousingCreditService. repo and cache may
// be nil, in which case plans are neither stored nor cached.
func NewHousingCreditService(
	opts Options,
	repo repository.PlanRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *HousingCreditService {
	return &HousingCreditService{
		opts:     opts,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Solve finds the first viable scenario for the household and returns it with
// its amortization schedule.
func (s *HousingCreditService) Solve(
	ctx context.Context,
	input domain.HousingInput,
) (domain.CreditPlan, error) {

	key := s.cacheKey(input)
	if plan, ok := s.cached(ctx, key); ok {
		metrics.PlansTotal.WithLabelValues("found").Inc()
		return plan, nil
	}

	start := time.Now()
	scenario, outcome, err := search(ctx, input, s.opts)
	metrics.SolveDuration.Observe(time.Since(start).Seconds())
	if outcome.Evaluated > 0 {
		metrics.CandidatesEvaluated.Observe(float64(outcome.Evaluated))
	}
	metrics.PlansTotal.WithLabelValues(outcomeLabel(err)).Inc()
	if err != nil {
		if errors.Is(err, domain.ErrSolver) {
			log.Printf("Error: solver failed after %d candidates: %v", outcome.Evaluated, err)
		}
		return domain.CreditPlan{}, err
	}

	schedule := BuildSchedule(
		scenario.LoanPrincipal,
		input.MonthlyRate(),
		scenario.TermMonths,
		scenario.MonthlyPayment,
		s.opts.Rounding,
	)
	paid, interest := ScheduleTotals(schedule)

	plan := domain.CreditPlan{
		ID:            s.newID(),
		CreatedAt:     s.now().UTC(),
		Input:         input,
		Scenario:      scenario,
		Schedule:      schedule,
		TotalPaid:     paid,
		TotalInterest: interest,
	}

	// Guardar el plan (no crítico si falla)
	if s.repo != nil {
		if err := s.repo.Save(ctx, plan); err != nil {
			log.Printf("Warning: failed to save credit plan: %v", err)
		}
	}
	s.store(ctx, key, plan)

	return plan, nil
}

// Plan returns a previously stored plan.
func (s *HousingCreditService) Plan(ctx context.Context, id string) (domain.CreditPlan, error) {
	if s.repo == nil {
		return domain.CreditPlan{}, domain.ErrPlanNotFound
	}
	return s.repo.Get(ctx, id)
}

// Plans lists stored plans, newest first.
func (s *HousingCreditService) Plans(ctx context.Context, limit int) ([]domain.PlanSummary, error) {
	if s.repo == nil {
		return []domain.PlanSummary{}, nil
	}
	return s.repo.List(ctx, limit)
}

func (s *HousingCreditService) cacheKey(input domain.HousingInput) string {
	return repository.CacheKey("plan",
		fmt.Sprintf("%v|%v|%v|%v|%v", input.HomePrice, input.MonthlyIncome,
			input.Savings, input.Subsidy, input.AnnualRate),
		fmt.Sprintf("%+v|%+v|%T|%d", s.opts.Policy, s.opts.Grid, s.opts.Solver, s.opts.Rounding),
	)
}

func (s *HousingCreditService) cached(ctx context.Context, key string) (domain.CreditPlan, bool) {
	if s.cache == nil {
		return domain.CreditPlan{}, false
	}

	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.CreditPlan{}, false
	}

	var plan domain.CreditPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		log.Printf("Warning: discarding corrupt cached plan: %v", err)
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.CreditPlan{}, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return plan, true
}

func (s *HousingCreditService) store(ctx context.Context, key string, plan domain.CreditPlan) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		log.Printf("Warning: failed to encode plan for cache: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache plan: %v", err)
	}
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrNoViableScenario):
		return "no_viable_scenario"
	}
	return "error"
}
