package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// IntPtr is a helper for creating *int values in tests
func IntPtr(v int) *int {
	return &v
}

// ShowOptions describes one show in a /search/shows payload.
type ShowOptions struct {
	ID      int
	Name    string
	Summary string // raw HTML, empty means null
	Medium  string // medium image URL, empty means "image": null
	Score   float64
}

// EpisodeOptions describes one element of a /shows/:id/episodes payload.
type EpisodeOptions struct {
	ID     int
	Name   string
	Season int
	Number *int // nil means "number": null (specials)
}

// GenerateSearchJSON builds a /search/shows response body shaped like the
// real TVmaze API, extra fields included.
func GenerateSearchJSON(shows []ShowOptions) string {
	hits := make([]map[string]any, 0, len(shows))
	for _, s := range shows {
		show := map[string]any{
			"id":        s.ID,
			"url":       fmt.Sprintf("https://www.tvmaze.com/shows/%d/%s", s.ID, slug(s.Name)),
			"name":      s.Name,
			"type":      "Scripted",
			"language":  "English",
			"genres":    []string{"Drama"},
			"status":    "Ended",
			"premiered": "2011-04-17",
			"summary":   nullable(s.Summary),
			"image":     nil,
		}
		if s.Medium != "" {
			show["image"] = map[string]string{
				"medium":   s.Medium,
				"original": strings.Replace(s.Medium, "medium_portrait", "original_untouched", 1),
			}
		}
		hits = append(hits, map[string]any{"score": s.Score, "show": show})
	}
	return mustJSON(hits)
}

// GenerateEpisodesJSON builds a /shows/:id/episodes response body.
func GenerateEpisodesJSON(episodes []EpisodeOptions) string {
	out := make([]map[string]any, 0, len(episodes))
	for _, e := range episodes {
		var number any
		if e.Number != nil {
			number = *e.Number
		}
		out = append(out, map[string]any{
			"id":      e.ID,
			"url":     fmt.Sprintf("https://www.tvmaze.com/episodes/%d/%s", e.ID, slug(e.Name)),
			"name":    e.Name,
			"season":  e.Season,
			"number":  number,
			"airdate": "2011-04-17",
			"runtime": 60,
			"summary": nil,
			"image":   nil,
		})
	}
	return mustJSON(out)
}

// TVmazeServer is an httptest server answering the two TVmaze endpoints
// from canned fixtures. Unknown shows answer 404.
type TVmazeServer struct {
	*httptest.Server

	mu       sync.Mutex
	search   map[string]string
	episodes map[string]string
	requests []string
}

// NewTVmazeServer starts a stub TVmaze API closed at test cleanup.
func NewTVmazeServer(t *testing.T) *TVmazeServer {
	t.Helper()
	s := &TVmazeServer{search: map[string]string{}, episodes: map[string]string{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search/shows", func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, s.search, r.URL.Query().Get("q"), "[]")
	})
	mux.HandleFunc("GET /shows/{id}/episodes", func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, s.episodes, r.PathValue("id"), "")
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// AddSearch registers the body returned for query q.
func (s *TVmazeServer) AddSearch(q string, shows []ShowOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search[q] = GenerateSearchJSON(shows)
}

// AddEpisodes registers the body returned for show id.
func (s *TVmazeServer) AddEpisodes(id int, episodes []EpisodeOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.episodes[fmt.Sprint(id)] = GenerateEpisodesJSON(episodes)
}

// Requests returns the request URIs received so far.
func (s *TVmazeServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *TVmazeServer) serve(w http.ResponseWriter, r *http.Request, bodies map[string]string, key, fallback string) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.RequestURI())
	body, ok := bodies[key]
	s.mu.Unlock()

	if !ok {
		if fallback == "" {
			http.NotFound(w, r)
			return
		}
		body = fallback
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
