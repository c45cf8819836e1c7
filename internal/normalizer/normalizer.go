// Package normalizer maps raw TVmaze payloads onto the fixed Show and Episode
// records consumed by the renderer. Every function here is pure.
package normalizer

import "github.com/Belphemur/ShowFinder/internal/models"

// FallbackImageURL is used for shows that have no medium image.
const FallbackImageURL = "https://tinyurl.com/tv-missing"

// ToShow extracts id, name, summary and image from a search hit.
// A hit without a show object yields the zero Show with the fallback image;
// the client rejects such payloads before they reach here.
func ToShow(hit models.RawSearchHit) models.Show {
	raw := hit.Show
	if raw == nil {
		return models.Show{Image: FallbackImageURL}
	}

	image := FallbackImageURL
	if raw.Image != nil && raw.Image.Medium != "" {
		image = raw.Image.Medium
	}

	return models.Show{
		ID:      raw.ID,
		Name:    raw.Name,
		Summary: raw.Summary,
		Image:   image,
	}
}

// ToShows normalizes every hit, preserving order.
func ToShows(hits []models.RawSearchHit) []models.Show {
	shows := make([]models.Show, 0, len(hits))
	for _, hit := range hits {
		shows = append(shows, ToShow(hit))
	}
	return shows
}

// ToEpisode copies id, name, season and number verbatim.
func ToEpisode(raw models.RawEpisode) models.Episode {
	return models.Episode{
		ID:     raw.ID,
		Name:   raw.Name,
		Season: raw.Season,
		Number: raw.Number,
	}
}

// ToEpisodes normalizes every entry, preserving order.
func ToEpisodes(raws []models.RawEpisode) []models.Episode {
	episodes := make([]models.Episode, 0, len(raws))
	for _, raw := range raws {
		episodes = append(episodes, ToEpisode(raw))
	}
	return episodes
}
