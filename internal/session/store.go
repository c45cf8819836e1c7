// Package session keeps the per-visitor UI containers (show list, episode
// detail, inline status) in a cache.Cache. Each container lives under its own
// key and is always written whole, so two flows touching different containers
// can never clobber each other.
package session

import (
	"encoding/json"
	"html/template"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowFinder/internal/cache"
	"github.com/Belphemur/ShowFinder/internal/render"
)

// CookieName is the cookie carrying the session id.
const CookieName = "showfinder_session"

const (
	keyQuery    = "query"
	keyShows    = "shows"
	keyEpisodes = "episodes"
	keyDetail   = "detail"
	keyStatus   = "status"

	// KeysPerSession is the number of cache keys one session can occupy.
	KeysPerSession = 5
)

// CacheSize converts a session budget into the entry budget of the backing
// cache, so LRU eviction removes whole sessions rather than single containers
// of a live one.
func CacheSize(sessions int) int {
	if sessions <= 0 {
		return 0
	}
	return sessions * KeysPerSession
}

// Store hands out the containers of a session.
type Store struct {
	cache  cache.Cache
	logger zerolog.Logger
}

// NewStore creates a Store backed by c.
func NewStore(c cache.Cache, logger zerolog.Logger) *Store {
	return &Store{cache: c, logger: logger}
}

// Containers returns the containers of session id. It does no I/O.
func (s *Store) Containers(id string) *Containers {
	return &Containers{store: s, id: id}
}

func (s *Store) key(id, container string) string {
	return id + ":" + container
}

func (s *Store) put(id, container string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.cache.Set(s.key(id, container), data)
	return nil
}

// get decodes the stored value into v. A missing or corrupt entry leaves v untouched.
func (s *Store) get(id, container string, v any) {
	data, ok := s.cache.Get(s.key(id, container))
	if !ok {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn().Err(err).Str("session", id).Str("container", container).Msg("Discarding unreadable container")
	}
}

// Containers groups the containers of one session.
type Containers struct {
	store *Store
	id    string
}

// ID returns the session id.
func (c *Containers) ID() string {
	return c.id
}

// Shows is the show-card container.
func (c *Containers) Shows() render.Container {
	return &listContainer{store: c.store, id: c.id, name: keyShows}
}

// Episodes is the episode detail view.
func (c *Containers) Episodes() render.DetailView {
	return &detailView{listContainer: listContainer{store: c.store, id: c.id, name: keyEpisodes}}
}

// RememberQuery stores the last search term so the form can show it again.
func (c *Containers) RememberQuery(q string) error {
	return c.store.put(c.id, keyQuery, q)
}

// SetStatus stores the inline error message. An empty message clears it.
func (c *Containers) SetStatus(msg string) {
	if msg == "" {
		c.store.cache.Delete(c.store.key(c.id, keyStatus))
		return
	}
	if err := c.store.put(c.id, keyStatus, msg); err != nil {
		c.store.logger.Error().Err(err).Str("session", c.id).Msg("Failed to store status")
	}
}

// Page reads every container of the session into a render.Page.
func (c *Containers) Page() render.Page {
	var page render.Page
	var shows, rows []string
	var detail detailState

	c.store.get(c.id, keyQuery, &page.Query)
	c.store.get(c.id, keyStatus, &page.Error)
	c.store.get(c.id, keyShows, &shows)
	c.store.get(c.id, keyEpisodes, &rows)
	c.store.get(c.id, keyDetail, &detail)

	page.Shows = toHTML(shows)
	page.Detail = render.Detail{Open: detail.Open, Title: detail.Title, Rows: toHTML(rows)}
	return page
}

// listContainer stores its fragments as one JSON array.
type listContainer struct {
	store *Store
	id    string
	name  string
}

func (l *listContainer) Replace(fragments []template.HTML) error {
	stored := make([]string, len(fragments))
	for i, f := range fragments {
		stored[i] = string(f)
	}
	return l.store.put(l.id, l.name, stored)
}

type detailState struct {
	Open  bool   `json:"open"`
	Title string `json:"title"`
}

// detailView keeps its rows and its visibility under separate keys so that
// closing the view never rewrites the rows.
type detailView struct {
	listContainer
}

func (d *detailView) Open(title string) error {
	return d.store.put(d.id, keyDetail, detailState{Open: true, Title: title})
}

func (d *detailView) Close() error {
	return d.store.put(d.id, keyDetail, detailState{})
}

// toHTML converts stored fragments back to template.HTML. They were produced
// by the renderer and are already escaped.
func toHTML(stored []string) []template.HTML {
	out := make([]template.HTML, len(stored))
	for i, s := range stored {
		out[i] = template.HTML(s)
	}
	return out
}
