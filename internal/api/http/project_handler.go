package http

import (
	"net/http"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/service"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	projects, total, err := h.svc.List(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects, "total": total})
}

func (h *ProjectHandler) JobCosting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	costing, err := h.svc.JobCosting(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, costing)
}

type addMemberRequest struct {
	FreelancerID   int32  `json:"freelancer_id"`
	Role           string `json:"role"`
	AgreedFeeCents *int64 `json:"agreed_fee_cents,omitempty"`
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	m, err := h.svc.AddMember(r.Context(), &domain.ProjectMember{
		ProjectID:      projectID,
		FreelancerID:   req.FreelancerID,
		Role:           req.Role,
		AgreedFeeCents: req.AgreedFeeCents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

type updateMemberStatusRequest struct {
	Status string `json:"status"`
}

func (h *ProjectHandler) UpdateMemberStatus(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req updateMemberStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	m, err := h.svc.UpdateMemberStatus(r.Context(), projectID, memberID, domain.ProjectMemberStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type setMemberFeeRequest struct {
	AgreedFeeCents *int64 `json:"agreed_fee_cents"`
}

func (h *ProjectHandler) SetMemberFee(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	memberID, err := pathID(r, "memberID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req setMemberFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	m, err := h.svc.SetMemberFee(r.Context(), projectID, memberID, req.AgreedFeeCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	members, err := h.svc.ListMembers(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

type expenseRequest struct {
	Category           string `json:"category"`
	Description        string `json:"description"`
	EstimatedCostCents *int64 `json:"estimated_cost_cents,omitempty"`
	ActualCostCents    *int64 `json:"actual_cost_cents,omitempty"`
	PaymentStatus      string `json:"payment_status,omitempty"`
}

func (h *ProjectHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	e, err := h.svc.AddExpense(r.Context(), &domain.ProjectExpense{
		ProjectID:          projectID,
		Category:           domain.TransactionCategory(req.Category),
		Description:        req.Description,
		EstimatedCostCents: req.EstimatedCostCents,
		ActualCostCents:    req.ActualCostCents,
		PaymentStatus:      domain.ExpensePaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *ProjectHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	expenseID, err := pathID(r, "expenseID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	e, err := h.svc.UpdateExpense(r.Context(), &domain.ProjectExpense{
		ID:                 expenseID,
		ProjectID:          projectID,
		Category:           domain.TransactionCategory(req.Category),
		Description:        req.Description,
		EstimatedCostCents: req.EstimatedCostCents,
		ActualCostCents:    req.ActualCostCents,
		PaymentStatus:      domain.ExpensePaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *ProjectHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	expenses, err := h.svc.ListExpenses(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
}

func (h *ProjectHandler) ListCalendarEvents(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	events, err := h.svc.ListCalendarEvents(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

type financialSummaryRequest struct {
	TotalRevenueCents  *int64 `json:"total_revenue_cents,omitempty"`
	ApprovedValueCents *int64 `json:"approved_value_cents,omitempty"`
}

func (h *ProjectHandler) SetFinancialSummary(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req financialSummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	summary := &domain.FinancialSummary{
		ProjectID:          projectID,
		TotalRevenueCents:  req.TotalRevenueCents,
		ApprovedValueCents: req.ApprovedValueCents,
	}
	if err := h.svc.SetFinancialSummary(r.Context(), summary); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
