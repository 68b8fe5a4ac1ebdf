package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"housing-credit/domain"
)

const planSchemaSQL = `
CREATE TABLE IF NOT EXISTS plans (
    id                   TEXT PRIMARY KEY,
    created_at           TEXT NOT NULL,
    home_price           REAL NOT NULL,
    monthly_income       REAL NOT NULL,
    savings              REAL NOT NULL,
    subsidy              REAL NOT NULL,
    annual_rate          REAL NOT NULL,
    monthly_savings      REAL NOT NULL,
    term_months          INTEGER NOT NULL,
    accumulated_savings  REAL NOT NULL,
    loan_principal       REAL NOT NULL,
    monthly_payment      REAL NOT NULL,
    months_of_saving     INTEGER NOT NULL,
    total_paid           REAL NOT NULL,
    total_interest       REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS amortization_rows (
    plan_id              TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
    month                INTEGER NOT NULL,
    payment              REAL NOT NULL,
    interest             REAL NOT NULL,
    principal_portion    REAL NOT NULL,
    remaining_balance    REAL NOT NULL,
    PRIMARY KEY (plan_id, month)
);

CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at);
`

// Ancho fijo para que el orden lexicográfico coincida con el cronológico
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLitePlanRepository persists plans with the pure-Go sqlite driver.
type SQLitePlanRepository struct {
	db *sql.DB
}

// OpenSQLitePlanRepository opens or creates the database at dbPath.
func OpenSQLitePlanRepository(dbPath string) (*SQLitePlanRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating storage dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}

	if _, err := db.Exec(planSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLitePlanRepository{db: db}, nil
}

func (r *SQLitePlanRepository) Close() error {
	return r.db.Close()
}

func (r *SQLitePlanRepository) Save(ctx context.Context, plan domain.CreditPlan) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	in, sc := plan.Input, plan.Scenario
	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO plans
		(id, created_at, home_price, monthly_income, savings, subsidy, annual_rate,
		 monthly_savings, term_months, accumulated_savings, loan_principal,
		 monthly_payment, months_of_saving, total_paid, total_interest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.CreatedAt.UTC().Format(timeLayout),
		in.HomePrice, in.MonthlyIncome, in.Savings, in.Subsidy, in.AnnualRate,
		sc.MonthlySavings, sc.TermMonths, sc.AccumulatedSavings, sc.LoanPrincipal,
		sc.MonthlyPayment, sc.MonthsOfSaving, plan.TotalPaid, plan.TotalInterest,
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM amortization_rows WHERE plan_id = ?", plan.ID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO amortization_rows
		(plan_id, month, payment, interest, principal_portion, remaining_balance)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range plan.Schedule {
		if _, err := stmt.ExecContext(ctx, plan.ID, row.Month, row.Payment, row.Interest,
			row.PrincipalPortion, row.RemainingBalance); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLitePlanRepository) Get(ctx context.Context, id string) (domain.CreditPlan, error) {
	var (
		plan    domain.CreditPlan
		created string
	)
	in, sc := &plan.Input, &plan.Scenario

	err := r.db.QueryRowContext(ctx, `SELECT id, created_at, home_price, monthly_income,
		savings, subsidy, annual_rate, monthly_savings, term_months, accumulated_savings,
		loan_principal, monthly_payment, months_of_saving, total_paid, total_interest
		FROM plans WHERE id = ?`, id).Scan(
		&plan.ID, &created, &in.HomePrice, &in.MonthlyIncome, &in.Savings, &in.Subsidy,
		&in.AnnualRate, &sc.MonthlySavings, &sc.TermMonths, &sc.AccumulatedSavings,
		&sc.LoanPrincipal, &sc.MonthlyPayment, &sc.MonthsOfSaving, &plan.TotalPaid,
		&plan.TotalInterest,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CreditPlan{}, domain.ErrPlanNotFound
	}
	if err != nil {
		return domain.CreditPlan{}, err
	}
	if plan.CreatedAt, err = parseCreated(created); err != nil {
		return domain.CreditPlan{}, fmt.Errorf("plan %s: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT month, payment, interest, principal_portion,
		remaining_balance FROM amortization_rows WHERE plan_id = ? ORDER BY month`, id)
	if err != nil {
		return domain.CreditPlan{}, err
	}
	defer func() { _ = rows.Close() }()

	plan.Schedule = make([]domain.AmortizationRow, 0, sc.TermMonths)
	for rows.Next() {
		var row domain.AmortizationRow
		if err := rows.Scan(&row.Month, &row.Payment, &row.Interest,
			&row.PrincipalPortion, &row.RemainingBalance); err != nil {
			return domain.CreditPlan{}, err
		}
		plan.Schedule = append(plan.Schedule, row)
	}
	return plan, rows.Err()
}

func (r *SQLitePlanRepository) List(ctx context.Context, limit int) ([]domain.PlanSummary, error) {
	if limit <= 0 {
		limit = -1 // sin límite en SQLite
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at, home_price, monthly_savings,
		term_months, loan_principal, monthly_payment
		FROM plans ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []domain.PlanSummary{}
	for rows.Next() {
		var (
			s       domain.PlanSummary
			created string
		)
		if err := rows.Scan(&s.ID, &created, &s.HomePrice, &s.MonthlySavings,
			&s.TermMonths, &s.LoanPrincipal, &s.MonthlyPayment); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseCreated(created); err != nil {
			return nil, fmt.Errorf("plan %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func parseCreated(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created_at %q: %w", raw, err)
	}
	return t, nil
}
