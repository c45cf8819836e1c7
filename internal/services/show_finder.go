package services

import (
	"context"

	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/render"
)

// ShowFinder runs the two user flows. Neither flow recovers from errors: a
// failed flow returns a Result with Err set and leaves every container as it was.
type ShowFinder interface {
	// SearchShows fetches shows matching term, replaces the show list and
	// closes the episode detail view.
	SearchShows(ctx context.Context, term string, shows render.Container, detail render.DetailView) models.Result[[]models.Show]

	// LookupEpisodes fetches the episodes of showID, replaces the detail
	// rows and reveals the view under showName.
	LookupEpisodes(ctx context.Context, showID int, showName string, detail render.DetailView) models.Result[[]models.Episode]
}

// Renderer is the part of render.Renderer the flows need.
type Renderer interface {
	RenderShows(c render.Container, shows []models.Show) error
	RenderEpisodes(v render.DetailView, title string, episodes []models.Episode) error
}
