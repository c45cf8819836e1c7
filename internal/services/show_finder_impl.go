package services

import (
	"context"
	"fmt"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/normalizer"
	"github.com/Belphemur/ShowFinder/internal/render"
)

const (
	flowSearch   = "search"
	flowEpisodes = "episodes"
)

// DefaultShowFinder implements ShowFinder on top of the TVmaze client.
// Episodes are fetched lazily, one show at a time, when the user asks.
type DefaultShowFinder struct {
	client   client.Client
	renderer Renderer
	reporter ErrorReporter
}

// NewShowFinder creates a ShowFinder. A nil reporter discards errors.
func NewShowFinder(c client.Client, r Renderer, reporter ErrorReporter) ShowFinder {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &DefaultShowFinder{client: c, renderer: r, reporter: reporter}
}

// SearchShows runs the show search flow.
func (f *DefaultShowFinder) SearchShows(ctx context.Context, term string, shows render.Container, detail render.DetailView) models.Result[[]models.Show] {
	logger := config.GetLogger()

	hits, err := f.client.SearchShows(ctx, term)
	if err != nil {
		return failed[[]models.Show](f.report(ctx, flowSearch, fmt.Errorf("search shows %q: %w", term, err)))
	}

	result := normalizer.ToShows(hits)
	if err := f.renderer.RenderShows(shows, result); err != nil {
		return failed[[]models.Show](f.report(ctx, flowSearch, fmt.Errorf("render shows: %w", err)))
	}
	if err := detail.Close(); err != nil {
		logger.Warn().Err(err).Msg("Failed to close episode detail after search")
	}

	metrics.FlowsTotal.WithLabelValues(flowSearch, "success").Inc()
	logger.Info().Str("term", term).Int("shows", len(result)).Msg("Search flow completed")
	return models.Result[[]models.Show]{Value: result}
}

// LookupEpisodes runs the episode lookup flow.
func (f *DefaultShowFinder) LookupEpisodes(ctx context.Context, showID int, showName string, detail render.DetailView) models.Result[[]models.Episode] {
	logger := config.GetLogger()

	raws, err := f.client.ListEpisodes(ctx, showID)
	if err != nil {
		return failed[[]models.Episode](f.report(ctx, flowEpisodes, fmt.Errorf("list episodes of show %d: %w", showID, err)))
	}

	episodes := normalizer.ToEpisodes(raws)
	if err := f.renderer.RenderEpisodes(detail, showName, episodes); err != nil {
		return failed[[]models.Episode](f.report(ctx, flowEpisodes, fmt.Errorf("render episodes: %w", err)))
	}

	metrics.FlowsTotal.WithLabelValues(flowEpisodes, "success").Inc()
	logger.Info().Int("showID", showID).Int("episodes", len(episodes)).Msg("Episode flow completed")
	return models.Result[[]models.Episode]{Value: episodes}
}

// report counts, logs and forwards a flow error, then returns it.
func (f *DefaultShowFinder) report(ctx context.Context, flow string, err error) error {
	logger := config.GetLogger()
	metrics.FlowsTotal.WithLabelValues(flow, "error").Inc()
	logger.Error().Err(err).Str("flow", flow).Msg("Flow failed")
	f.reporter.Report(ctx, flow, err)
	return err
}

func failed[T any](err error) models.Result[T] {
	return models.Result[T]{Err: err}
}
