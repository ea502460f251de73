package http

import (
	"net/http"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/service"
	"reelstudio-backend/internal/utils"
)

type ProposalHandler struct {
	svc service.ProposalService
}

func NewProposalHandler(svc service.ProposalService) *ProposalHandler {
	return &ProposalHandler{svc: svc}
}

type proposalResponse struct {
	Proposal *domain.Proposal     `json:"proposal"`
	Totals   utils.ProposalTotals `json:"totals"`
}

type createProposalRequest struct {
	ClientID    int32      `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DiscountPct float64    `json:"discount_percent"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
}

func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.svc.Create(r.Context(), &domain.Proposal{
		ClientID:        req.ClientID,
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPct,
		ValidUntil:      req.ValidUntil,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	p, totals, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposalResponse{Proposal: p, Totals: totals})
}

func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	proposals, total, err := h.svc.List(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"proposals": proposals, "total": total})
}

func (h *ProposalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req createProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, totals, err := h.svc.UpdateDetails(r.Context(), id, req.Title, req.Description, req.DiscountPct, req.ValidUntil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposalResponse{Proposal: p, Totals: totals})
}

func (h *ProposalHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	p, err := h.svc.Send(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProposalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	p, err := h.svc.Reject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProposalHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	result, err := h.svc.Accept(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type lineItemRequest struct {
	Description    string     `json:"description"`
	Quantity       int32      `json:"quantity"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	SortOrder      int32      `json:"sort_order"`
}

func (h *ProposalHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req lineItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	totals, err := h.svc.AddItem(r.Context(), &domain.LineItem{
		ProposalID:     proposalID,
		Description:    req.Description,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
		EventDate:      req.EventDate,
		SortOrder:      req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, totals)
}

func (h *ProposalHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req lineItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	totals, err := h.svc.UpdateItem(r.Context(), &domain.LineItem{
		ID:             itemID,
		ProposalID:     proposalID,
		Description:    req.Description,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
		EventDate:      req.EventDate,
		SortOrder:      req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *ProposalHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	totals, err := h.svc.RemoveItem(r.Context(), proposalID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

type optionalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PriceCents  int64      `json:"price_cents"`
	IsSelected  bool       `json:"is_selected"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	SortOrder   int32      `json:"sort_order"`
}

func (h *ProposalHandler) AddOptional(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req optionalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	totals, err := h.svc.AddOptional(r.Context(), &domain.Optional{
		ProposalID:  proposalID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		IsSelected:  req.IsSelected,
		EventDate:   req.EventDate,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, totals)
}

func (h *ProposalHandler) UpdateOptional(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	optionalID, err := pathID(r, "optionalID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req optionalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	totals, err := h.svc.UpdateOptional(r.Context(), &domain.Optional{
		ID:          optionalID,
		ProposalID:  proposalID,
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		IsSelected:  req.IsSelected,
		EventDate:   req.EventDate,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *ProposalHandler) RemoveOptional(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	optionalID, err := pathID(r, "optionalID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	totals, err := h.svc.RemoveOptional(r.Context(), proposalID, optionalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

type scheduleEntryRequest struct {
	Description string     `json:"description"`
	Percent     *float64   `json:"percent,omitempty"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	SortOrder   int32      `json:"sort_order"`
}

func (h *ProposalHandler) AddScheduleEntry(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req scheduleEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.svc.AddScheduleEntry(r.Context(), &domain.PaymentScheduleEntry{
		ProposalID:  proposalID,
		Description: req.Description,
		Percent:     req.Percent,
		AmountCents: req.AmountCents,
		DueDate:     req.DueDate,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProposalHandler) RemoveScheduleEntry(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	entryID, err := pathID(r, "entryID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.RemoveScheduleEntry(r.Context(), proposalID, entryID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
