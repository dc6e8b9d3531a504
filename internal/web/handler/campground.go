package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/auth"
	"github.com/rfallows/campgrounds/internal/services/campground"
	"github.com/rfallows/campgrounds/internal/services/review"
	"github.com/rfallows/campgrounds/internal/upload"
	"github.com/rfallows/campgrounds/internal/validate"
	"github.com/rfallows/campgrounds/internal/web/middleware"
	"github.com/rfallows/campgrounds/internal/web/templates"
	"github.com/rfallows/campgrounds/internal/weberr"
)

// campgroundSchema validates campground submissions. Adding a field here
// is the whole change; the evaluation loop is shared.
var campgroundSchema = validate.Schema{Fields: []validate.Field{
	{Name: "title", Kind: validate.Text, Required: true},
	{Name: "location", Kind: validate.Text, Required: true},
	{Name: "price", Kind: validate.Number, Required: true, Min: validate.Min(0)},
	{Name: "description", Kind: validate.Text},
}}

// CampgroundHandler serves the campground listing, detail and CRUD pages
type CampgroundHandler struct {
	renderer    *templates.Renderer
	campgrounds *campground.Service
	reviews     *review.Service
	auth        *auth.Service
	uploads     *upload.Adapter
	logger      *slog.Logger
}

// NewCampgroundHandler creates a campground handler
func NewCampgroundHandler(
	renderer *templates.Renderer,
	campgrounds *campground.Service,
	reviews *review.Service,
	authService *auth.Service,
	uploads *upload.Adapter,
	logger *slog.Logger,
) *CampgroundHandler {
	return &CampgroundHandler{
		renderer:    renderer,
		campgrounds: campgrounds,
		reviews:     reviews,
		auth:        authService,
		uploads:     uploads,
		logger:      logger,
	}
}

// Index lists every campground
func (h *CampgroundHandler) Index(w http.ResponseWriter, r *http.Request) error {
	list, err := h.campgrounds.List(r.Context())
	if err != nil {
		return err
	}
	return h.renderer.Render(w, http.StatusOK, "campgrounds_index", templates.CampgroundsData{
		PageData:    pageData(r, "All Campgrounds"),
		Campgrounds: list,
	})
}

// NewForm renders the creation form
func (h *CampgroundHandler) NewForm(w http.ResponseWriter, r *http.Request) error {
	return h.renderer.Render(w, http.StatusOK, "campground_new", templates.CampgroundFormData{
		PageData: pageData(r, "New Campground"),
	})
}

// Create validates the submission, uploads its images, and persists the
// campground. Validation runs before any upload so a rejected submission
// never stores an object; if persistence fails after the upload, the
// stored objects are released again.
func (h *CampgroundHandler) Create(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())

	input, files, err := h.parseSubmission(r)
	if err != nil {
		return err
	}

	images, err := h.uploads.UploadAll(r.Context(), files)
	if err != nil {
		return err
	}

	cg, err := h.campgrounds.Create(r.Context(), scope.Identity.ID, input, images)
	if err != nil {
		h.uploads.Cleanup(r.Context(), images)
		return err
	}

	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Successfully made a new campground!",
		"/campgrounds/"+string(cg.ID))
}

// Show renders a campground's detail page with its reviews
func (h *CampgroundHandler) Show(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())
	id := model.CampgroundID(mux.Vars(r)["campgroundID"])

	cg, err := h.campgrounds.Get(r.Context(), id)
	if err != nil {
		return err
	}

	reviews, err := h.reviews.ListForCampground(r.Context(), cg)
	if err != nil {
		return err
	}

	owner, err := h.auth.Identity(r.Context(), cg.OwnerID)
	if err != nil && !errors.Is(err, model.ErrIdentityNotFound) {
		return err
	}

	return h.renderer.Render(w, http.StatusOK, "campground_show", templates.CampgroundShowData{
		PageData:   pageData(r, cg.Title),
		Campground: cg,
		Owner:      owner,
		Reviews:    reviews,
		IsOwner:    scope.Identity != nil && scope.Identity.ID == cg.OwnerID,
	})
}

// EditForm renders the edit form for the campground loaded by the
// ownership guard
func (h *CampgroundHandler) EditForm(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())
	return h.renderer.Render(w, http.StatusOK, "campground_edit", templates.CampgroundFormData{
		PageData:   pageData(r, "Edit "+scope.Campground.Title),
		Campground: scope.Campground,
	})
}

// Update applies an edit submission, appending any new images
func (h *CampgroundHandler) Update(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())

	input, files, err := h.parseSubmission(r)
	if err != nil {
		return err
	}

	images, err := h.uploads.UploadAll(r.Context(), files)
	if err != nil {
		return err
	}

	cg, err := h.campgrounds.Update(r.Context(), scope.Campground.ID, input, images)
	if err != nil {
		h.uploads.Cleanup(r.Context(), images)
		return err
	}

	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Successfully updated campground!",
		"/campgrounds/"+string(cg.ID))
}

// Delete removes the campground, its reviews, and its stored images
func (h *CampgroundHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	scope := middleware.GetScope(r.Context())

	deleted, err := h.campgrounds.Delete(r.Context(), scope.Campground.ID)
	if err != nil {
		return err
	}
	h.uploads.Cleanup(r.Context(), deleted.Images)

	return flashRedirect(w, r, h.auth, h.logger,
		model.FlashSuccess, "Successfully deleted campground",
		"/campgrounds")
}

// parseSubmission reads a multipart campground form into validated input
// plus the raw file parts, not yet uploaded
func (h *CampgroundHandler) parseSubmission(r *http.Request) (campground.Input, []*multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return campground.Input{}, nil, weberr.Validation(&validate.Violations{Items: []validate.Violation{
			{Field: "form", Message: "could not be read"},
		}})
	}

	values, violations := campgroundSchema.Apply(r.PostForm)
	if violations != nil {
		return campground.Input{}, nil, weberr.Validation(violations)
	}

	input := campground.Input{
		Title:       values.Text("title"),
		Description: values.Text("description"),
		Location:    values.Text("location"),
		Price:       values.Number("price"),
	}
	return input, r.MultipartForm.File["images"], nil
}
