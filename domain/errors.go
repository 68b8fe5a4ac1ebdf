package domain

import "errors"

var (
	// Entrada
	ErrInvalidInput = errors.New("invalid input")

	// Resultados recuperables: el usuario puede ajustar sus datos
	ErrInsufficientFunds = errors.New("insufficient down payment")
	ErrNoViableScenario  = errors.New("no viable scenario found")

	// Fallos internos del solver; no deberían ocurrir con la forma cerrada
	ErrSolver = errors.New("feasibility solver failure")

	ErrPlanNotFound = errors.New("plan not found")
)
