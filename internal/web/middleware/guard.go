package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/campground"
	"github.com/rfallows/campgrounds/internal/services/review"
	"github.com/rfallows/campgrounds/internal/weberr"
)

// ErrorResponder forwards a rejected request to the centralized error
// responder, the same one handlers report to
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// RequireAuthenticated returns middleware that rejects anonymous
// requests, redirecting to the sign-in entry point with the original
// destination preserved
func RequireAuthenticated(respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := GetScope(r.Context())
			if scope.Identity == nil {
				respond(w, r, weberr.NotAuthenticated(r.URL.Path))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCampgroundOwner returns middleware that loads the campground
// named in the path and verifies the resolved identity owns it. The
// loaded record is placed in the request scope so the handler need not
// reload it. Absent resource → not found; wrong owner → forbidden.
func RequireCampgroundOwner(campgrounds *campground.Service, respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := GetScope(r.Context())
			id := model.CampgroundID(mux.Vars(r)["campgroundID"])

			cg, err := campgrounds.Get(r.Context(), id)
			if err != nil {
				respond(w, r, err)
				return
			}

			if scope.Identity == nil || cg.OwnerID != scope.Identity.ID {
				respond(w, r, weberr.Forbidden(
					"You do not have permission to do that",
					"/campgrounds/"+string(cg.ID),
				))
				return
			}

			scope.Campground = cg
			next.ServeHTTP(w, r)
		})
	}
}

// RequireReviewAuthor returns middleware that loads the review named in
// the path, scoped to the campground in the same path, and verifies the
// resolved identity authored it. A review id belonging to a different
// campground is not found, never silently followed.
func RequireReviewAuthor(reviews *review.Service, respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope := GetScope(r.Context())
			vars := mux.Vars(r)
			campgroundID := model.CampgroundID(vars["campgroundID"])
			reviewID := model.ReviewID(vars["reviewID"])

			rv, err := reviews.Get(r.Context(), campgroundID, reviewID)
			if err != nil {
				respond(w, r, err)
				return
			}

			if scope.Identity == nil || rv.AuthorID != scope.Identity.ID {
				respond(w, r, weberr.Forbidden(
					"You do not have permission to do that",
					"/campgrounds/"+string(campgroundID),
				))
				return
			}

			scope.Review = rv
			next.ServeHTTP(w, r)
		})
	}
}
