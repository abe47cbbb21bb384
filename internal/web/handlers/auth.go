package handlers

import (
	"errors"
	"net/http"
	"time"

	"stockcast/internal/apperr"
	"stockcast/internal/auth"
	"stockcast/internal/forms"
	"stockcast/internal/session"
	"stockcast/pkg/logger"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	auth       *auth.Service
	sessions   session.Store
	sessionTTL time.Duration
	logger     *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *auth.Service, sessions session.Store, sessionTTL time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       authService,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     log,
	}
}

type authPage struct {
	Error    string
	Username string
	Email    string
}

// ShowRegister renders the registration form.
// GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "register.html", authPage{})
}

// Register creates a new user and redirects to the login page.
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseRegister(r)
	if err != nil {
		render(w, h.logger, "register.html", authPage{
			Error:    "Please fill in all fields (password at least 6 characters).",
			Username: form.Username,
			Email:    form.Email,
		})
		return
	}

	_, err = h.auth.Register(r.Context(), form.Username, form.Email, form.Password)
	if errors.Is(err, apperr.ErrDuplicateUsername) {
		render(w, h.logger, "register.html", authPage{
			Error:    "That username is already taken.",
			Username: form.Username,
			Email:    form.Email,
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Registration failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin renders the login form.
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "login.html", authPage{})
}

// Login authenticates the user and establishes a session. A failed attempt
// re-shows the form with no session established and no hint about which
// check failed.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := forms.ParseLogin(r)
	if err != nil {
		render(w, h.logger, "login.html", authPage{Error: "Invalid username or password."})
		return
	}

	userID, err := h.auth.Authenticate(r.Context(), form.Username, form.Password)
	if errors.Is(err, apperr.ErrAuthentication) {
		render(w, h.logger, "login.html", authPage{Error: "Invalid username or password.", Username: form.Username})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Login failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Session creation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	session.SetCookie(w, token, h.sessionTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session unconditionally and redirects to login.
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := session.TokenFromRequest(r); ok {
		if err := h.sessions.Delete(r.Context(), token); err != nil {
			h.logger.WithError(err).Warn("Session deletion failed")
		}
	}

	session.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
