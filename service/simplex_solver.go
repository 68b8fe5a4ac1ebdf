package service

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"housing-credit/domain"
)

// SimplexSolver poses the minimisation as a linear program in standard form
// and solves it with gonum's simplex. It gives the same answers as
// ClosedFormSolver and is the place to add constraints that break the
// closed-form reduction.
//
// Variables x = [loan, surplus, slack] >= 0:
//
//	loan - surplus        = price - funds - accumulated
//	factor*loan  + slack  = cap
type SimplexSolver struct {
	Tolerance float64
}

func (s SimplexSolver) Solve(p FeasibilityProblem) (Solution, error) {
	factor, err := PaymentFactor(p.MonthlyRate, p.TermMonths)
	if err != nil {
		return Solution{}, err
	}

	gap := p.HomePrice - p.AvailableFunds - p.AccumulatedSavings
	paymentCap := p.PaymentCap()
	if paymentCap < 0 {
		return Solution{Status: StatusInfeasible}, nil
	}

	// Escalar a magnitudes cercanas a 1 para que la tolerancia sea relativa
	scale := math.Max(1, math.Max(math.Abs(gap), paymentCap))

	row1 := []float64{1, -1, 0}
	b1 := gap / scale
	if b1 < 0 {
		row1 = []float64{-1, 1, 0}
		b1 = -b1
	}

	A := mat.NewDense(2, 3, append(row1, factor, 0, 1))
	b := []float64{b1, paymentCap / scale}
	c := []float64{1, 0, 0}

	tol := s.Tolerance
	if tol <= 0 {
		tol = simplexTolerance
	}

	_, x, err := lp.Simplex(c, A, b, tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return Solution{Status: StatusInfeasible}, nil
		}
		return Solution{}, fmt.Errorf("%w: %v", domain.ErrSolver, err)
	}

	loan := x[0] * scale
	shortfall := p.Shortfall()
	if math.Abs(loan-shortfall) <= 1e-6*scale {
		loan = shortfall
	}
	if loan < shortfall {
		return Solution{}, fmt.Errorf("%w: solución %.2f por debajo del faltante %.2f",
			domain.ErrSolver, loan, shortfall)
	}

	return Solution{Status: StatusOptimal, LoanPrincipal: loan}, nil
}
