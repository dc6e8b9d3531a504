// Package web wires the HTTP surface together: the router, the error
// boundary handlers report to, and the server lifecycle.
package web

import (
	"log/slog"
	"net/http"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/web/middleware"
	"github.com/rfallows/campgrounds/internal/web/templates"
	"github.com/rfallows/campgrounds/internal/weberr"
)

// HandlerFunc is an HTTP handler that reports failure instead of
// writing an error response itself
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Boundary is the single place errors become responses. Handlers and
// guards alike report here, so every failure path renders the same way.
type Boundary struct {
	renderer *templates.Renderer
	auth     *auth.Service
	logger   *slog.Logger
}

// NewBoundary creates the error boundary
func NewBoundary(renderer *templates.Renderer, authService *auth.Service, logger *slog.Logger) *Boundary {
	return &Boundary{
		renderer: renderer,
		auth:     authService,
		logger:   logger,
	}
}

// Handle adapts an error-returning handler to http.Handler
func (b *Boundary) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			b.Respond(w, r, err)
		}
	})
}

// Respond classifies an error and writes the response for it. Kinds that
// carry a redirect target flash the message and send the user there;
// everything else renders the error page. Unrecognized errors are logged
// in full but reported generically.
func (b *Boundary) Respond(w http.ResponseWriter, r *http.Request, err error) {
	we := weberr.From(err)

	if we.Kind() == weberr.KindInternal {
		b.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", we.Error()),
		)
	}

	if target := we.Redirect(); target != "" {
		scope := middleware.GetScope(r.Context())
		if scope.Session != nil {
			if ferr := b.auth.SetFlash(r.Context(), scope.Session.Token, model.FlashError, we.Message()); ferr != nil {
				b.logger.Warn("flash not queued", slog.String("error", ferr.Error()))
			}
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	data := templates.ErrorData{
		PageData:   templates.PageData{Title: "Error"},
		Status:     we.Status(),
		Message:    we.Message(),
		Violations: we.Violations(),
	}
	scope := middleware.GetScope(r.Context())
	data.Identity = scope.Identity
	data.Flash = scope.Flash

	if rerr := b.renderer.Render(w, we.Status(), "error", data); rerr != nil {
		b.logger.Error("error page render failed", slog.String("error", rerr.Error()))
	}
}

// NotFound is the catch-all for paths no route claims
func (b *Boundary) NotFound(w http.ResponseWriter, r *http.Request) {
	b.Respond(w, r, weberr.NotFound("Page not found"))
}
