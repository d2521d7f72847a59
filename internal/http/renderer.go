package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/mmjournal/mmjournal/internal/domain"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names, one per template file besides base.html
const (
	PageLogin          = "login"
	PageRegister       = "register"
	PageSummary        = "summary"
	PageEditCategories = "edit_categories"
	PageEditExercises  = "edit_exercises"
	PagePractice       = "practice"
)

var pageTitles = map[string]string{
	PageLogin:          "Log in",
	PageRegister:       "Register",
	PageSummary:        "Summary",
	PageEditCategories: "Categories",
	PageEditExercises:  "Exercises",
	PagePractice:       "Practice",
}

// PageData is everything a page template may render. Unused fields stay empty.
type PageData struct {
	Title    string
	Version  string
	Identity *domain.Identity
	Message  string
	Email    string
	Success  bool

	Categories []domain.Category
	Exercises  []domain.Exercise
	Choices    []domain.ExerciseChoice
	Sessions   []domain.SessionRecord
}

type Renderer struct {
	pages   map[string]*template.Template
	version string
	logger  logger.Logger
}

func NewRenderer(version string, logger logger.Logger) (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageTitles))
	for name := range pageTitles {
		layout, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := layout.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = page
	}

	return &Renderer{pages: pages, version: version, logger: logger}, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data PageData) {
	page, ok := rd.pages[name]
	if !ok {
		rd.logger.WithField("page", name).Error("Unknown page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if data.Title == "" {
		data.Title = pageTitles[name]
	}
	data.Version = rd.version
	if data.Identity == nil {
		data.Identity, _ = domain.IdentityFromContext(r.Context())
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.logger.WithField("page", name).WithField("error", err.Error()).Error("Failed to render page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
