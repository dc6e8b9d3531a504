package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/services/review"
	"github.com/rfallows/campgrounds/internal/validate"
	"github.com/rfallows/campgrounds/internal/web/middleware"
	"github.com/rfallows/campgrounds/internal/weberr"
)

var reviewSchema = validate.Schema{Fields: []validate.Field{
	{Name: "rating", Kind: validate.Integer, Required: true, Min: validate.Min(model.MinRating), Max: validate.Max(model.MaxRating)},
	{Name: "body", Kind: validate.Text, Required: true},
}}

// ReviewHandler serves the review operations nested under a campground
type ReviewHandler struct {
	reviews *review.Service
	auth    *auth.Service
	logger  *slog.Logger
}

// NewReviewHandler creates a review handler
func NewReviewHandler(reviews *review.Service, authService *auth.Service, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		auth:    authService,
		logger:  logger,
	}
}

// Create validates and persists a review under the campground named in
// the path. The parent must exist; a dangling path is not found.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())
	campgroundID := model.CampgroundID(mux.Vars(r)["campgroundID"])

	if err := r.ParseForm(); err != nil {
		return err
	}
	values, violations := reviewSchema.Apply(r.PostForm)
	if violations != nil {
		return weberr.Validation(violations)
	}

	_, err := h.reviews.Create(r.Context(), campgroundID, scope.Identity.ID,
		values.Int("rating"), values.Text("body"))
	if err != nil {
		return err
	}

	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Created new review!",
		"/campgrounds/"+string(campgroundID))
}

// Delete removes the review loaded by the author guard
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())
	campgroundID := model.CampgroundID(mux.Vars(r)["campgroundID"])

	if err := h.reviews.Delete(r.Context(), campgroundID, scope.Review.ID); err != nil {
		return err
	}

	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Successfully deleted review",
		"/campgrounds/"+string(campgroundID))
}
