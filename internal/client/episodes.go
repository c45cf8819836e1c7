package client

import (
	"context"
	"fmt"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// ListEpisodes issues GET /shows/<id>/episodes.
func (c *client) ListEpisodes(ctx context.Context, showID int) ([]models.RawEpisode, error) {
	logger := config.GetLogger()
	endpoint := fmt.Sprintf("%s/shows/%d/episodes", c.baseURL, showID)

	logger.Info().Int("showID", showID).Msg("Listing episodes")

	var episodes []models.RawEpisode
	if err := c.getJSON(ctx, "list_episodes", "episodes", endpoint, &episodes); err != nil {
		return nil, err
	}

	logger.Info().Int("showID", showID).Int("episodes", len(episodes)).Msg("Episode listing completed")
	return episodes, nil
}
