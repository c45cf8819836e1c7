package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// NormalizeTerm trims a search term and puts it in Unicode NFC form so that
// visually identical queries hit TVmaze with identical bytes.
func NormalizeTerm(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}

// SearchShows issues GET /search/shows?q=<term>.
func (c *client) SearchShows(ctx context.Context, term string) ([]models.RawSearchHit, error) {
	logger := config.GetLogger()
	term = NormalizeTerm(term)

	query := url.Values{}
	query.Set("q", term)
	endpoint := fmt.Sprintf("%s/search/shows?%s", c.baseURL, query.Encode())

	logger.Info().Str("term", term).Msg("Searching shows")

	var hits []models.RawSearchHit
	if err := c.getJSON(ctx, "search_shows", "search", endpoint, &hits); err != nil {
		return nil, err
	}

	for i, hit := range hits {
		if hit.Show == nil {
			return nil, apperrors.NewMalformedDataError("search", fmt.Errorf("hit %d has no show object", i))
		}
	}

	logger.Info().Str("term", term).Int("hits", len(hits)).Msg("Show search completed")
	return hits, nil
}
