// Package render turns normalized records into HTML fragments and places them
// into containers supplied by the caller.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Belphemur/ShowFinder/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Container hosts a list of fragments. Replace clears the container and
// fills it with fragments in order, in one step.
type Container interface {
	Replace(fragments []template.HTML) error
}

// DetailView is the episode container: a Container that can be revealed with
// a title and hidden again.
type DetailView interface {
	Container
	Open(title string) error
	Close() error
}

// Detail is the episode detail view as shown in the page.
type Detail struct {
	Open  bool
	Title string
	Rows  []template.HTML
}

// Page is everything the full page needs.
type Page struct {
	Query  string
	Error  string
	Shows  []template.HTML
	Detail Detail
}

// Renderer owns the parsed templates. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("showfinder").
		Funcs(template.FuncMap{"summary": SanitizeSummary}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderShows replaces the content of c with one card per show. Every card
// carries an "Episodes" action keyed by data-show-id.
func (r *Renderer) RenderShows(c Container, shows []models.Show) error {
	cards := make([]template.HTML, 0, len(shows))
	for _, show := range shows {
		card, err := r.fragment("show_card", show)
		if err != nil {
			return fmt.Errorf("render show %d: %w", show.ID, err)
		}
		cards = append(cards, card)
	}
	return c.Replace(cards)
}

// RenderEpisodes replaces the content of v with one row per episode, in
// order, then reveals v under title.
func (r *Renderer) RenderEpisodes(v DetailView, title string, episodes []models.Episode) error {
	rows := make([]template.HTML, 0, len(episodes))
	for _, episode := range episodes {
		row, err := r.fragment("episode_row", episode)
		if err != nil {
			return fmt.Errorf("render episode %d: %w", episode.ID, err)
		}
		rows = append(rows, row)
	}
	if err := v.Replace(rows); err != nil {
		return err
	}
	return v.Open(title)
}

// RenderPage writes the full page.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "page", page)
}

func (r *Renderer) fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	// Output of html/template is already escaped for the HTML body context.
	return template.HTML(buf.String()), nil
}
