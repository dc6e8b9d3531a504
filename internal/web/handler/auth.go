package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/web/middleware"
	"github.com/rfallows/campgrounds/internal/web/templates"
)

const minPasswordLength = 8

// AuthHandler serves registration, sign-in and sign-out
type AuthHandler struct {
	renderer *templates.Renderer
	auth     *auth.Service
	logger   *slog.Logger
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(renderer *templates.Renderer, authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		renderer: renderer,
		auth:     authService,
		logger:   logger,
	}
}

// LoginPage renders the sign-in form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) error {
	return h.renderer.Render(w, http.StatusOK, "login", templates.LoginData{
		PageData: pageData(r, "Login"),
		Next:     r.URL.Query().Get("next"),
	})
}

// Login verifies credentials and swaps the anonymous session for an
// authenticated one. Bad credentials re-render the form with a single
// generic message; which part was wrong is never revealed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	next := r.PostForm.Get("next")

	identity, session, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return h.renderer.Render(w, http.StatusUnauthorized, "login", templates.LoginData{
				PageData: pageData(r, "Login"),
				Username: username,
				ErrorMsg: "Invalid username or password",
				Next:     next,
			})
		}
		return err
	}

	h.replaceSession(w, r, session)
	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Welcome back, "+identity.Username+"!",
		safeRedirectTarget(next, "/campgrounds"))
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) error {
	return h.renderer.Render(w, http.StatusOK, "register", templates.RegisterData{
		PageData: pageData(r, "Register"),
	})
}

// Register creates an account and signs the new user in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	fieldErrors := map[string]string{}
	if username == "" {
		fieldErrors["username"] = "is required"
	}
	if len(password) < minPasswordLength {
		fieldErrors["password"] = "must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		return h.renderer.Render(w, http.StatusBadRequest, "register", templates.RegisterData{
			PageData:    pageData(r, "Register"),
			Username:    username,
			FieldErrors: fieldErrors,
		})
	}

	identity, session, err := h.auth.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			return h.renderer.Render(w, http.StatusConflict, "register", templates.RegisterData{
				PageData: pageData(r, "Register"),
				Username: username,
				ErrorMsg: "That username is already taken",
			})
		}
		return err
	}

	h.replaceSession(w, r, session)
	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Welcome, "+identity.Username+"!",
		"/campgrounds")
}

// Logout destroys the current session and starts a fresh anonymous one
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())
	if scope.Session != nil {
		if err := h.auth.Destroy(r.Context(), scope.Session.Token); err != nil {
			h.logger.Warn("session destroy failed", slog.String("error", err.Error()))
		}
	}

	session, err := h.auth.StartSession(r.Context())
	if err != nil {
		return err
	}
	h.replaceSession(w, r, session)
	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Goodbye!", "/campgrounds")
}

// replaceSession discards the session the request arrived with and binds
// the client to a new one. Tokens are never reused across an
// authentication change.
func (h *AuthHandler) replaceSession(w http.ResponseWriter, r *http.Request, session *model.Session) {
	scope := middleware.GetScope(r.Context())
	if scope.Session != nil && scope.Session.Token != session.Token {
		if err := h.auth.Destroy(r.Context(), scope.Session.Token); err != nil {
			h.logger.Warn("stale session not destroyed", slog.String("error", err.Error()))
		}
	}
	scope.Session = session
	middleware.SetSessionCookie(w, session.Token)
}
