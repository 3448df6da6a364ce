package server

import (
	"net/http"

	"github.com/avikbasu/healthlog/internal/middleware"
	"github.com/avikbasu/healthlog/internal/models"
	"github.com/avikbasu/healthlog/internal/service"
	"github.com/avikbasu/healthlog/internal/summary"
)

// summaryHandler serves per-day nutrition aggregates against the user's goals.
type summaryHandler struct {
	svc *service.LogService[models.NutritionEntry]
}

func (h *summaryHandler) get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	entries := h.svc.List(r.Context(), sess.UserID)
	goals := h.svc.Goals(r.Context(), sess.UserID)

	writeJSON(w, http.StatusOK, summary.Progress(summary.Daily(entries), goals))
}
