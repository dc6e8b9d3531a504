package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/services/campground"
	"github.com/rfallows/campgrounds/internal/services/review"
	"github.com/rfallows/campgrounds/internal/upload"
	"github.com/rfallows/campgrounds/internal/web/handler"
	"github.com/rfallows/campgrounds/internal/web/middleware"
	"github.com/rfallows/campgrounds/internal/web/templates"
)

// RouterConfig holds everything the router needs
type RouterConfig struct {
	Logger            *slog.Logger
	Renderer          *templates.Renderer
	AuthService       *auth.Service
	CampgroundService *campground.Service
	ReviewService     *review.Service
	Uploads           *upload.Adapter
}

// NewRouter builds the full request pipeline. Every route's guard chain
// is spelled out at registration, so the authorization a route gets is
// visible in one place.
func NewRouter(cfg RouterConfig) http.Handler {
	boundary := NewBoundary(cfg.Renderer, cfg.AuthService, cfg.Logger)

	home := handler.NewHomeHandler(cfg.Renderer)
	authH := handler.NewAuthHandler(cfg.Renderer, cfg.AuthService, cfg.Logger)
	campgrounds := handler.NewCampgroundHandler(
		cfg.Renderer, cfg.CampgroundService, cfg.ReviewService,
		cfg.AuthService, cfg.Uploads, cfg.Logger)
	reviews := handler.NewReviewHandler(cfg.ReviewService, cfg.AuthService, cfg.Logger)

	requireAuth := middleware.RequireAuthenticated(boundary.Respond)
	requireOwner := middleware.RequireCampgroundOwner(cfg.CampgroundService, boundary.Respond)
	requireAuthor := middleware.RequireReviewAuthor(cfg.ReviewService, boundary.Respond)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(boundary.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(boundary.NotFound)

	r.Handle("/", boundary.Handle(home.Home)).Methods(http.MethodGet)

	r.Handle("/register", boundary.Handle(authH.RegisterPage)).Methods(http.MethodGet)
	r.Handle("/register", boundary.Handle(authH.Register)).Methods(http.MethodPost)
	r.Handle("/login", boundary.Handle(authH.LoginPage)).Methods(http.MethodGet)
	r.Handle("/login", boundary.Handle(authH.Login)).Methods(http.MethodPost)
	r.Handle("/logout", boundary.Handle(authH.Logout)).Methods(http.MethodPost)

	r.Handle("/campgrounds",
		boundary.Handle(campgrounds.Index)).Methods(http.MethodGet)
	r.Handle("/campgrounds",
		requireAuth(boundary.Handle(campgrounds.Create))).Methods(http.MethodPost)
	r.Handle("/campgrounds/new",
		requireAuth(boundary.Handle(campgrounds.NewForm))).Methods(http.MethodGet)
	r.Handle("/campgrounds/{campgroundID}",
		boundary.Handle(campgrounds.Show)).Methods(http.MethodGet)
	r.Handle("/campgrounds/{campgroundID}",
		requireAuth(requireOwner(boundary.Handle(campgrounds.Update)))).Methods(http.MethodPut)
	r.Handle("/campgrounds/{campgroundID}",
		requireAuth(requireOwner(boundary.Handle(campgrounds.Delete)))).Methods(http.MethodDelete)
	r.Handle("/campgrounds/{campgroundID}/edit",
		requireAuth(requireOwner(boundary.Handle(campgrounds.EditForm)))).Methods(http.MethodGet)

	r.Handle("/campgrounds/{campgroundID}/reviews",
		requireAuth(boundary.Handle(reviews.Create))).Methods(http.MethodPost)
	r.Handle("/campgrounds/{campgroundID}/reviews/{reviewID}",
		requireAuth(requireAuthor(boundary.Handle(reviews.Delete)))).Methods(http.MethodDelete)

	// The outer layers wrap the router rather than using r.Use: the
	// method override has to run before route matching, and the session
	// has to be live for the catch-all 404 page.
	var h http.Handler = r
	h = middleware.Session(cfg.AuthService, cfg.Logger)(h)
	h = middleware.MethodOverride()(h)
	h = middleware.Logging(cfg.Logger)(h)
	h = middleware.Recovery(cfg.Logger)(h)
	return h
}
