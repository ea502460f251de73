package http

import (
	"context"
	"net/http"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/service"
)

type TransactionHandler struct {
	svc service.TransactionService
}

func NewTransactionHandler(svc service.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type transactionRequest struct {
	Type         string     `json:"type"`
	Category     string     `json:"category"`
	AmountCents  int64      `json:"amount_cents"`
	Description  string     `json:"description"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ProjectID    *int32     `json:"project_id,omitempty"`
	ProposalID   *int32     `json:"proposal_id,omitempty"`
	FreelancerID *int32     `json:"freelancer_id,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// transactionView adds the derived overdue flag to the stored record.
// The flag is computed at response time, never persisted.
type transactionView struct {
	*domain.Transaction
	Overdue bool `json:"is_overdue"`
}

func newTransactionView(tx *domain.Transaction) transactionView {
	return transactionView{Transaction: tx, Overdue: tx.IsOverdue(time.Now())}
}

// transactionResponse carries edit warnings alongside the record. The
// list of warnings is empty for routine updates.
type transactionResponse struct {
	Transaction transactionView `json:"transaction"`
	Warnings    []string        `json:"warnings,omitempty"`
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tx, err := h.svc.Create(r.Context(), &domain.Transaction{
		Type:         domain.TransactionType(req.Type),
		Category:     domain.TransactionCategory(req.Category),
		AmountCents:  req.AmountCents,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ProjectID:    req.ProjectID,
		ProposalID:   req.ProposalID,
		FreelancerID: req.FreelancerID,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTransactionView(tx))
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionView(tx))
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	q := r.URL.Query()
	txs, total, err := h.svc.List(r.Context(), q.Get("type"), q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]transactionView, len(txs))
	for i := range txs {
		views[i] = newTransactionView(&txs[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": views, "total": total})
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tx, warnings, err := h.svc.Update(r.Context(), &domain.Transaction{
		ID:           id,
		Type:         domain.TransactionType(req.Type),
		Category:     domain.TransactionCategory(req.Category),
		AmountCents:  req.AmountCents,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ProjectID:    req.ProjectID,
		ProposalID:   req.ProposalID,
		FreelancerID: req.FreelancerID,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionResponse{Transaction: newTransactionView(tx), Warnings: warnings})
}

func (h *TransactionHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.MarkAsPaid)
}

func (h *TransactionHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Schedule)
}

func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Cancel)
}

func (h *TransactionHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int32) (*domain.Transaction, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	tx, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionView(tx))
}
