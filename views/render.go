// Package views renders the filtered list: as HTML for the browser page and
// as plain text for the terminal.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/RehanAli357/baby-food/models"
	"github.com/RehanAli357/baby-food/services"
)

const (
	PageTitle = "Baby Food Recommendations"
	NoResults = "No foods match your filters."

	pageTemplate    = "page.html"
	resultsTemplate = "results.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is what the full page needs.
type PageData struct {
	Title   string
	Options []string
	State   services.ViewState
	Foods   []models.FoodRecord
}

// NewPageData builds the page for a state using the catalog.
func NewPageData(c *services.Catalog, state services.ViewState) PageData {
	return PageData{
		Title:   PageTitle,
		Options: c.Options(),
		State:   state,
		Foods:   c.FilterState(state),
	}
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"amount":    models.FormatAmount,
		"noResults": func() string { return NoResults },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template exposes the parsed set, e.g. for gin's HTML renderer.
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, pageTemplate, data)
}

// Results renders only the result grid, the fragment re-sent on every
// state change.
func (r *Renderer) Results(w io.Writer, foods []models.FoodRecord) error {
	return r.tmpl.ExecuteTemplate(w, resultsTemplate, foods)
}

func (r *Renderer) ResultsHTML(foods []models.FoodRecord) (string, error) {
	var buf bytes.Buffer
	if err := r.Results(&buf, foods); err != nil {
		return "", err
	}
	return buf.String(), nil
}
