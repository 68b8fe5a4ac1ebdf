package repository

import (
	"context"

	"housing-credit/domain"
)

type PlanRepository interface {
	Save(ctx context.Context, plan domain.CreditPlan) error
	Get(ctx context.Context, id string) (domain.CreditPlan, error)
	// List returns the most recent plans first.
	List(ctx context.Context, limit int) ([]domain.PlanSummary, error)
}
