package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avikbasu/healthlog/internal/middleware"
	"github.com/avikbasu/healthlog/internal/service"
)

// entriesHandler serves one food log namespace. The nutrition and legacy
// diet namespaces share it, differing only in the request field names
// handled by parse.
type entriesHandler[T any] struct {
	svc   *service.LogService[T]
	parse func(r *http.Request) (service.EntryInput, error)
}

// nutritionEntryRequest uses the current field names.
type nutritionEntryRequest struct {
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}

// dietEntryRequest uses the legacy field names.
type dietEntryRequest struct {
	Date     string   `json:"date"`
	Meal     string   `json:"meal"`
	FoodName string   `json:"foodName"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}

func parseNutritionEntry(r *http.Request) (service.EntryInput, error) {
	var req nutritionEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return service.EntryInput{}, err
	}
	return service.EntryInput{
		Date:     req.Date,
		Category: req.Type,
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
	}, nil
}

func parseDietEntry(r *http.Request) (service.EntryInput, error) {
	var req dietEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return service.EntryInput{}, err
	}
	return service.EntryInput{
		Date:     req.Date,
		Category: req.Meal,
		Name:     req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
	}, nil
}

func (h *entriesHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	writeJSON(w, http.StatusOK, h.svc.List(r.Context(), sess.UserID))
}

func (h *entriesHandler[T]) add(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	in, err := h.parse(r)
	if err != nil {
		badRequest(w, "invalid request body")
		return
	}

	entry, err := h.svc.Add(r.Context(), sess.UserID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *entriesHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
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

// replaceAll swaps the user's whole collection for the posted array.
func (h *entriesHandler[T]) replaceAll(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var entries []T
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		badRequest(w, "expected an array of entries")
		return
	}
	if entries == nil {
		// JSON null decodes into a nil slice without an error.
		badRequest(w, "expected an array of entries")
		return
	}

	if err := h.svc.ReplaceAll(r.Context(), sess.UserID, entries); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *entriesHandler[T]) getGoals(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	writeJSON(w, http.StatusOK, h.svc.Goals(r.Context(), sess.UserID))
}

func (h *entriesHandler[T]) putGoals(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	goals, err := h.svc.SaveGoals(r.Context(), sess.UserID, raw)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}
