// Package web binds browser events to the two flows: the search form submits
// to /search and every "Episodes" action posts to one delegated route keyed by
// show id. Each mutating route redirects back to the page.
package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/session"
)

// Server holds the HTTP handlers.
type Server struct {
	finder   services.ShowFinder
	renderer *render.Renderer
	store    *session.Store
	router   chi.Router
}

// Options tweaks the router.
type Options struct {
	// SecureCookies marks the session cookie Secure. Enable behind TLS.
	SecureCookies bool
}

// NewServer creates the router and registers every route.
func NewServer(finder services.ShowFinder, renderer *render.Renderer, store *session.Store, opts Options) *Server {
	s := &Server{finder: finder, renderer: renderer, store: store}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(withSession(opts.SecureCookies))
		r.Use(crossOriginGuard)
		r.Get("/", s.handlePage)
		r.Get("/search", s.handleSearch)
		r.Post("/shows/{id}/episodes", s.handleEpisodes)
		r.Post("/detail/close", s.handleCloseDetail)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) containers(r *http.Request) *session.Containers {
	return s.store.Containers(sessionID(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handlePage renders the current state of the session.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	logger := config.GetLogger()
	page := s.containers(r).Page()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.renderer.RenderPage(w, page); err != nil {
		logger.Error().Err(err).Msg("Failed to render page")
	}
}

// handleSearch is the form submit: Search -> Search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sc := s.containers(r)
	term := r.URL.Query().Get("q")

	if err := sc.RememberQuery(term); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Msg("Failed to remember query")
	}

	result := s.finder.SearchShows(r.Context(), term, sc.Shows(), sc.Episodes())
	sc.SetStatus(apperrors.UserMessage(result.Err))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEpisodes is the delegated "Episodes" action: Search -> Episode Detail.
func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	showID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || showID <= 0 {
		http.Error(w, "invalid show id", http.StatusBadRequest)
		return
	}

	sc := s.containers(r)
	result := s.finder.LookupEpisodes(r.Context(), showID, r.PostFormValue("show_name"), sc.Episodes())
	sc.SetStatus(apperrors.UserMessage(result.Err))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleCloseDetail is the close control: Episode Detail -> Search.
func (s *Server) handleCloseDetail(w http.ResponseWriter, r *http.Request) {
	if err := s.containers(r).Episodes().Close(); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Msg("Failed to close episode detail")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
