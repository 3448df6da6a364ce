package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avikbasu/healthlog/internal/middleware"
	"github.com/avikbasu/healthlog/internal/service"
)

// weightHandler owns the weight log endpoints.
type weightHandler struct {
	svc *service.WeightService
}

type addWeightRequest struct {
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
}

func (h *weightHandler) list(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	writeJSON(w, http.StatusOK, h.svc.List(r.Context(), sess.UserID))
}

func (h *weightHandler) add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var req addWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "date and weight are required")
		return
	}

	entry, err := h.svc.Add(r.Context(), sess.UserID, req.Date, req.Weight)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *weightHandler) remove(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w, "invalid entry id")
		return
	}

	remaining, err := h.svc.Remove(r.Context(), sess.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, remaining)
}
