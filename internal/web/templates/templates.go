package templates

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rfallows/campgrounds/internal/model"
	"github.com/rfallows/campgrounds/internal/services/review"
	"github.com/rfallows/campgrounds/internal/validate"
)

//go:embed *.tmpl
var files embed.FS

// PageData is the state every page shares: the signed-in user and any
// one-shot flash message for this response
type PageData struct {
	Title    string
	Identity *model.Identity
	Flash    *model.Flash
}

// HomeData backs the landing page
type HomeData struct {
	PageData
}

// LoginData backs the sign-in page
type LoginData struct {
	PageData
	Username string
	ErrorMsg string
	Next     string
}

// RegisterData backs the registration page
type RegisterData struct {
	PageData
	Username    string
	ErrorMsg    string
	FieldErrors map[string]string
}

// CampgroundsData backs the listing page
type CampgroundsData struct {
	PageData
	Campgrounds []*model.Campground
}

// CampgroundFormData backs the new and edit forms
type CampgroundFormData struct {
	PageData
	Campground *model.Campground // nil on the new form
	Violations *validate.Violations
}

// CampgroundShowData backs the detail page
type CampgroundShowData struct {
	PageData
	Campground *model.Campground
	Owner      *model.Identity
	Reviews    []review.WithAuthor
	IsOwner    bool
}

// ErrorData backs the error page the centralized responder renders
type ErrorData struct {
	PageData
	Status     int
	Message    string
	Violations *validate.Violations
}

// Renderer holds the parsed page templates, each combined with the
// shared layout
type Renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"home",
	"login",
	"register",
	"campgrounds_index",
	"campground_new",
	"campground_show",
	"campground_edit",
	"error",
}

// New parses the embedded templates
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(files, "layout.tmpl", name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes a page with the given status code
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.ExecuteTemplate(w, "layout", data)
}
