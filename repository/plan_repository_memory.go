package repository

import (
	"context"
	"sync"

	"housing-credit/domain"
)

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu    sync.RWMutex
	order []string
	data  map[string]domain.CreditPlan
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		data: make(map[string]domain.CreditPlan),
	}
}

// Save stores the plan in memory.
func (r *PlanRepositoryMemory) Save(_ context.Context, plan domain.CreditPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[plan.ID]; !exists {
		r.order = append(r.order, plan.ID)
	}
	r.data[plan.ID] = plan
	return nil
}

func (r *PlanRepositoryMemory) Get(_ context.Context, id string) (domain.CreditPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.data[id]
	if !ok {
		return domain.CreditPlan{}, domain.ErrPlanNotFound
	}
	return plan, nil
}

func (r *PlanRepositoryMemory) List(_ context.Context, limit int) ([]domain.PlanSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.PlanSummary{}
	for i := len(r.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, r.data[r.order[i]].Summary())
	}
	return out, nil
}
