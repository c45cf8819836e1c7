package render

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/normalizer"
)

// bufferContainer is an in-memory Container that can also act as a DetailView.
type bufferContainer struct {
	fragments []template.HTML
	open      bool
	title     string
	replaces  int
	failWith  error
}

func (b *bufferContainer) Replace(fragments []template.HTML) error {
	if b.failWith != nil {
		return b.failWith
	}
	b.replaces++
	b.fragments = append([]template.HTML(nil), fragments...)
	return nil
}

func (b *bufferContainer) Open(title string) error {
	b.open = true
	b.title = title
	return nil
}

func (b *bufferContainer) Close() error {
	b.open = false
	return nil
}

func (b *bufferContainer) doc(t *testing.T) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("<table><tbody>")
	for _, f := range b.fragments {
		sb.WriteString(string(f))
	}
	sb.WriteString("</tbody></table>")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("parse fragments: %v", err)
	}
	return doc
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

var testShows = []models.Show{
	{ID: 975, Name: "Batman", Summary: "<p>The <b>Caped</b> Crusader.</p>", Image: "https://static.tvmaze.com/m/1.jpg"},
	{ID: 481, Name: "Batman Unlimited", Summary: "", Image: normalizer.FallbackImageURL},
}

func TestRenderShows_OneCardPerShow(t *testing.T) {
	r := newTestRenderer(t)
	c := &bufferContainer{}

	if err := r.RenderShows(c, testShows); err != nil {
		t.Fatalf("RenderShows: %v", err)
	}

	doc := c.doc(t)
	cards := doc.Find(".Show")
	if cards.Length() != 2 {
		t.Fatalf("Expected 2 cards, got %d", cards.Length())
	}

	first := cards.First()
	if id, _ := first.Attr("data-show-id"); id != "975" {
		t.Errorf("Expected data-show-id 975, got %q", id)
	}
	if src, _ := first.Find("img").Attr("src"); src != "https://static.tvmaze.com/m/1.jpg" {
		t.Errorf("Unexpected image src %q", src)
	}
	if name := first.Find("h5").Text(); name != "Batman" {
		t.Errorf("Expected name Batman, got %q", name)
	}
	if first.Find("small b").Text() != "Caped" {
		t.Error("Expected allowed summary markup to be kept")
	}

	button := first.Find("button.Show-getEpisodes")
	if name, _ := button.Attr("data-show-name"); name != "Batman" {
		t.Errorf("Expected data-show-name Batman, got %q", name)
	}
	if action, _ := first.Find("form").Attr("action"); action != "/shows/975/episodes" {
		t.Errorf("Expected action /shows/975/episodes, got %q", action)
	}

	second := cards.Eq(1)
	if src, _ := second.Find("img").Attr("src"); src != normalizer.FallbackImageURL {
		t.Errorf("Expected fallback image, got %q", src)
	}
}

func TestRenderShows_IdempotentShape(t *testing.T) {
	r := newTestRenderer(t)
	c := &bufferContainer{}

	for i := 0; i < 2; i++ {
		if err := r.RenderShows(c, testShows); err != nil {
			t.Fatalf("RenderShows #%d: %v", i, err)
		}
	}

	if got := c.doc(t).Find(".Show").Length(); got != len(testShows) {
		t.Fatalf("Expected %d cards after two renders, got %d", len(testShows), got)
	}
}

func TestRenderShows_EmptyClears(t *testing.T) {
	r := newTestRenderer(t)
	c := &bufferContainer{}

	_ = r.RenderShows(c, testShows)
	if err := r.RenderShows(c, nil); err != nil {
		t.Fatalf("RenderShows: %v", err)
	}
	if len(c.fragments) != 0 {
		t.Fatalf("Expected empty container, got %d fragments", len(c.fragments))
	}
	if c.replaces != 2 {
		t.Errorf("Expected 2 replaces, got %d", c.replaces)
	}
}

func TestRenderShows_EscapesNames(t *testing.T) {
	r := newTestRenderer(t)
	c := &bufferContainer{}

	shows := []models.Show{{ID: 1, Name: `<script>alert("x")</script>`, Image: normalizer.FallbackImageURL}}
	if err := r.RenderShows(c, shows); err != nil {
		t.Fatalf("RenderShows: %v", err)
	}

	if strings.Contains(string(c.fragments[0]), "<script>") {
		t.Fatalf("Expected show name to be escaped, got %s", c.fragments[0])
	}
	if got := c.doc(t).Find("h5").Text(); got != shows[0].Name {
		t.Errorf("Expected escaped name to read back verbatim, got %q", got)
	}
}

func TestRenderShows_ContainerError(t *testing.T) {
	r := newTestRenderer(t)
	boom := errors.New("store down")
	c := &bufferContainer{failWith: boom}

	if err := r.RenderShows(c, testShows); !errors.Is(err, boom) {
		t.Fatalf("Expected container error to propagate, got %v", err)
	}
}

func TestRenderEpisodes_RowsInOrder(t *testing.T) {
	r := newTestRenderer(t)
	v := &bufferContainer{}

	episodes := []models.Episode{
		{ID: 1, Name: "Pilot", Season: 1, Number: 1},
		{ID: 2, Name: "The Kingsroad", Season: 1, Number: 2},
		{ID: 3, Name: "Lord Snow", Season: 1, Number: 3},
	}
	if err := r.RenderEpisodes(v, "Game of Thrones", episodes); err != nil {
		t.Fatalf("RenderEpisodes: %v", err)
	}

	rows := v.doc(t).Find("tr")
	if rows.Length() != len(episodes) {
		t.Fatalf("Expected %d rows, got %d", len(episodes), rows.Length())
	}
	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Eq(0).Text() != episodes[i].Name {
			t.Errorf("Row %d: expected name %q, got %q", i, episodes[i].Name, cells.Eq(0).Text())
		}
		if cells.Eq(1).Text() != "1" {
			t.Errorf("Row %d: expected season 1, got %q", i, cells.Eq(1).Text())
		}
	})

	if !v.open || v.title != "Game of Thrones" {
		t.Errorf("Expected detail view to be open with title, got open=%v title=%q", v.open, v.title)
	}
}

func TestRenderPage(t *testing.T) {
	r := newTestRenderer(t)
	shows := &bufferContainer{}
	detail := &bufferContainer{}

	_ = r.RenderShows(shows, testShows)
	_ = r.RenderEpisodes(detail, "Batman", []models.Episode{{ID: 7, Name: "Pilot", Season: 1, Number: 1}})

	var buf bytes.Buffer
	err := r.RenderPage(&buf, Page{
		Query:  "batman",
		Error:  "TVmaze could not be reached.",
		Shows:  shows.fragments,
		Detail: Detail{Open: true, Title: detail.title, Rows: detail.fragments},
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}

	if v, _ := doc.Find("#search-query").Attr("value"); v != "batman" {
		t.Errorf("Expected query to be kept in the form, got %q", v)
	}
	if doc.Find("#shows-list .Show").Length() != 2 {
		t.Errorf("Expected 2 cards in #shows-list, got %d", doc.Find("#shows-list .Show").Length())
	}
	if doc.Find("#episodes-area tr").Length() != 1 {
		t.Errorf("Expected 1 episode row, got %d", doc.Find("#episodes-area tr").Length())
	}
	if _, hidden := doc.Find("#modal").Attr("hidden"); hidden {
		t.Error("Expected detail view to be visible")
	}
	if doc.Find("#modal-title").Text() != "Batman" {
		t.Errorf("Unexpected modal title %q", doc.Find("#modal-title").Text())
	}
	if doc.Find("#status").Text() != "TVmaze could not be reached." {
		t.Errorf("Unexpected status %q", doc.Find("#status").Text())
	}
}

func TestRenderPage_DetailHiddenByDefault(t *testing.T) {
	r := newTestRenderer(t)

	var buf bytes.Buffer
	if err := r.RenderPage(&buf, Page{}); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	if _, hidden := doc.Find("#modal").Attr("hidden"); !hidden {
		t.Error("Expected detail view to be hidden")
	}
	if doc.Find("#status").Length() != 0 {
		t.Error("Expected no status area without an error")
	}
}
