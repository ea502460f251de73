package http

import (
	"net/http"
	"time"

	"reelstudio-backend/internal/domain"
	"reelstudio-backend/internal/service"
)

type EquipmentHandler struct {
	svc service.EquipmentService
}

func NewEquipmentHandler(svc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

type equipmentRequest struct {
	Name               string     `json:"name"`
	Category           string     `json:"category"`
	SerialNumber       string     `json:"serial_number,omitempty"`
	PurchasePriceCents int64      `json:"purchase_price_cents"`
	DailyRateCents     int64      `json:"daily_rate_cents"`
	PurchaseDate       *time.Time `json:"purchase_date,omitempty"`
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	eq, err := h.svc.Create(r.Context(), &domain.Equipment{
		Name:               req.Name,
		Category:           req.Category,
		SerialNumber:       req.SerialNumber,
		PurchasePriceCents: req.PurchasePriceCents,
		DailyRateCents:     req.DailyRateCents,
		PurchaseDate:       req.PurchaseDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	eq, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	items, total, err := h.svc.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"equipment": items, "total": total})
}

func (h *EquipmentHandler) ROI(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	roi, err := h.svc.ROI(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roi)
}

type bookingRequest struct {
	ProjectID *int32    `json:"project_id,omitempty"`
	Days      int32     `json:"days"`
	StartDate time.Time `json:"start_date"`
	// DayRateCents overrides the equipment's rate when present; absent
	// means "book at the current rate".
	DayRateCents *int64 `json:"day_rate_cents,omitempty"`
}

func (h *EquipmentHandler) RecordBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	eq, err := h.svc.RecordBooking(r.Context(), &domain.EquipmentBooking{
		EquipmentID: id,
		ProjectID:   req.ProjectID,
		Days:        req.Days,
		StartDate:   req.StartDate,
	}, req.DayRateCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	bookings, err := h.svc.ListBookings(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}
