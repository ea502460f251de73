package http

import (
	"net/http"

	"reelstudio-backend/internal/service"

	"github.com/gorilla/mux"
)

// PublicProposalHandler serves the unauthenticated proposal view reached
// through a share token. Viewing marks the SENT -> VIEWED transition;
// toggling an optional is the only mutation available to the client.
type PublicProposalHandler struct {
	svc service.ProposalService
}

func NewPublicProposalHandler(svc service.ProposalService) *PublicProposalHandler {
	return &PublicProposalHandler{svc: svc}
}

func (h *PublicProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	p, totals, err := h.svc.GetByShareToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposalResponse{Proposal: p, Totals: totals})
}

type toggleOptionalRequest struct {
	Selected bool `json:"selected"`
}

func (h *PublicProposalHandler) ToggleOptional(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	optionalID, err := pathID(r, "optionalID")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	var req toggleOptionalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	totals, err := h.svc.ToggleOptional(r.Context(), token, optionalID, req.Selected)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *PublicProposalHandler) Accept(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	result, err := h.svc.AcceptByShareToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
