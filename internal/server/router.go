// Package server wires the HTTP surface: routing, handlers and middleware.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avikbasu/healthlog/internal/auth"
	"github.com/avikbasu/healthlog/internal/metrics"
	"github.com/avikbasu/healthlog/internal/middleware"
	"github.com/avikbasu/healthlog/internal/models"
	"github.com/avikbasu/healthlog/internal/service"
	"github.com/avikbasu/healthlog/internal/session"
)

// Deps are the collaborators the router mounts.
type Deps struct {
	Authenticator  auth.Authenticator
	Sessions       session.Store
	Weight         *service.WeightService
	Nutrition      *service.LogService[models.NutritionEntry]
	Diet           *service.LogService[models.DietEntry]
	AllowedOrigins []string
}

// New builds the service's router. Every data route is mounted behind
// session auth; authentication failures short-circuit before validation.
func New(deps Deps) http.Handler {
	authH := &authHandler{authn: deps.Authenticator, sessions: deps.Sessions}
	weightH := &weightHandler{svc: deps.Weight}
	nutritionH := &entriesHandler[models.NutritionEntry]{svc: deps.Nutrition, parse: parseNutritionEntry}
	dietH := &entriesHandler[models.DietEntry]{svc: deps.Diet, parse: parseDietEntry}
	summaryH := &summaryHandler{svc: deps.Nutrition}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authH.register)
		r.Post("/login", authH.login)
		r.Post("/logout", authH.logout)
		r.With(middleware.RequireAuth(deps.Sessions)).Get("/session", authH.status)
	})

	r.Route("/api/weight", func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Sessions))
		r.Get("/", weightH.list)
		r.Post("/", weightH.add)
		r.Delete("/{id}", weightH.remove)
	})

	r.Route("/api/nutrition", func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Sessions))
		r.Get("/", nutritionH.list)
		r.Post("/", nutritionH.add)
		r.Put("/", nutritionH.replaceAll)
		r.Delete("/{id}", nutritionH.remove)
		r.Get("/settings", nutritionH.getGoals)
		r.Put("/settings", nutritionH.putGoals)
		r.Get("/summary", summaryH.get)
	})

	// Legacy namespace kept for old clients; same operations, old field names.
	r.Route("/api/diet", func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Sessions))
		r.Get("/", dietH.list)
		r.Post("/", dietH.add)
		r.Put("/", dietH.replaceAll)
		r.Delete("/{id}", dietH.remove)
		r.Get("/settings", dietH.getGoals)
		r.Put("/settings", dietH.putGoals)
	})

	return r
}
