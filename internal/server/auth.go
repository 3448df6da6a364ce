package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avikbasu/healthlog/internal/auth"
	"github.com/avikbasu/healthlog/internal/middleware"
	"github.com/avikbasu/healthlog/internal/session"
)

// authHandler owns the register/login/logout/session endpoints.
type authHandler struct {
	authn    auth.Authenticator
	sessions session.Store
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := h.authn.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := h.authn.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID, user.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(session.DefaultTTL / time.Second),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	// Destroying an absent session is fine; logout is idempotent.
	if token := middleware.Token(r); token != "" {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			writeError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// status reports the identity behind the request's session.
// Mounted behind RequireAuth.
func (h *authHandler) status(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		writeError(w, session.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
