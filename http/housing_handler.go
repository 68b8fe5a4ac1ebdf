package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"housing-credit/domain"
	"housing-credit/export"
)

// maxBodyBytes bounds plan request bodies; a valid one is a few hundred bytes.
const maxBodyBytes = 16 << 10

// PlanService is the subset of the housing credit service the handlers use.
type PlanService interface {
	Solve(ctx context.Context, input domain.HousingInput) (domain.CreditPlan, error)
	Plan(ctx context.Context, id string) (domain.CreditPlan, error)
	Plans(ctx context.Context, limit int) ([]domain.PlanSummary, error)
}

// planRequest is the JSON body of the plan endpoints. AnnualRate is optional.
type planRequest struct {
	HomePrice     float64  `json:"home_price"`
	MonthlyIncome float64  `json:"monthly_income"`
	Savings       float64  `json:"savings"`
	Subsidy       float64  `json:"subsidy"`
	AnnualRate    *float64 `json:"annual_rate,omitempty"`
}

type HousingHandler struct {
	service     PlanService
	defaultRate float64
}

func NewHousingHandler(service PlanService, defaultRate float64) *HousingHandler {
	if defaultRate <= 0 {
		defaultRate = domain.DefaultAnnualRate
	}
	return &HousingHandler{service: service, defaultRate: defaultRate}
}

// CreatePlan handles POST /housing/plan.
func (h *HousingHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.solve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// ExportPlan handles POST /housing/plan/export and answers with the
// amortization workbook.
func (h *HousingHandler) ExportPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.solve(w, r)
	if !ok {
		return
	}

	// Generar el archivo en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, plan); err != nil {
		log.Printf("Error building workbook for plan %s: %v", plan.ID, err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.Header().Set("X-Plan-ID", plan.ID)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing workbook: %v", err)
	}
}

// GetPlan handles GET /housing/plans/{id}.
func (h *HousingHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	plan, err := h.service.Plan(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// ListPlans handles GET /housing/plans?limit=N.
func (h *HousingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_input", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	plans, err := h.service.Plans(r.Context(), limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": plans})
}

func (h *HousingHandler) solve(w http.ResponseWriter, r *http.Request) (domain.CreditPlan, bool) {
	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "Content-Type must be application/json")
		return domain.CreditPlan{}, false
	}

	var req planRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
			return domain.CreditPlan{}, false
		}
		log.Printf("Error decoding request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return domain.CreditPlan{}, false
	}

	input := domain.HousingInput{
		HomePrice:     req.HomePrice,
		MonthlyIncome: req.MonthlyIncome,
		Savings:       req.Savings,
		Subsidy:       req.Subsidy,
		AnnualRate:    h.defaultRate,
	}
	if req.AnnualRate != nil {
		input.AnnualRate = *req.AnnualRate
	}

	plan, err := h.service.Solve(r.Context(), input)
	if err != nil {
		h.fail(w, err)
		return domain.CreditPlan{}, false
	}
	return plan, true
}

func (h *HousingHandler) fail(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Error handling housing request: %v", err)
		msg = "internal server error"
	}
	writeError(w, status, code, msg)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "insufficient_down_payment"
	case errors.Is(err, domain.ErrNoViableScenario):
		return http.StatusUnprocessableEntity, "no_viable_scenario"
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "timeout"
	}
	return http.StatusInternalServerError, "internal_error"
}

// writeJSON encodes v into a buffer first so a failed encode still yields a
// clean 500.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": msg,
		},
	})
}
