// Package handler implements the HTTP handlers behind the campground
// site. Handlers return errors instead of writing error responses
// themselves; the boundary in package web classifies and renders them.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/web/middleware"
	"github.com/rfallows/campgrounds/internal/web/templates"
)

// maxUploadBytes bounds how much of a multipart submission is buffered
// in memory before spilling to disk
const maxUploadBytes = 32 << 20

// pageData assembles the state every page shares from the request scope
func pageData(r *http.Request, title string) templates.PageData {
	scope := middleware.GetScope(r.Context())
	return templates.PageData{
		Title:    title,
		Identity: scope.Identity,
		Flash:    scope.Flash,
	}
}

// flashRedirect queues a one-shot message on the current session and
// sends the client to url. A failed flash write is logged, not fatal;
// the redirect still happens.
func flashRedirect(w http.ResponseWriter, r *http.Request, authService *auth.Service, logger *slog.Logger, kind model.FlashKind, text, url string) error {
	scope := middleware.GetScope(r.Context())
	if scope.Session != nil {
		if err := authService.SetFlash(r.Context(), scope.Session.Token, kind, text); err != nil {
			logger.Warn("flash not queued", slog.String("error", err.Error()))
		}
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
	return nil
}

// safeRedirectTarget accepts only same-site paths as post-login
// destinations, falling back to fallback for anything else
func safeRedirectTarget(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}

// HomeHandler serves the landing page
type HomeHandler struct {
	renderer *templates.Renderer
}

// NewHomeHandler creates a home handler
func NewHomeHandler(renderer *templates.Renderer) *HomeHandler {
	return &HomeHandler{renderer: renderer}
}

// Home renders the landing page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) error {
	return h.renderer.Render(w, http.StatusOK, "home", templates.HomeData{
		PageData: pageData(r, "Home"),
	})
}
