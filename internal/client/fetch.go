package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
)

// getJSON performs one GET against endpointURL and decodes the JSON body into
// out. op names the endpoint in errors, logs and metrics.
func (c *client) getJSON(ctx context.Context, op, resource, endpointURL string, out any) error {
	logger := config.GetLogger()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return apperrors.NewNetworkError(op, endpointURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(op, "error").Inc()
		logger.Warn().Err(err).Str("op", op).Str("url", endpointURL).Msg("TVmaze request failed")
		return apperrors.NewNetworkError(op, endpointURL, err)
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Str("op", op).Str("url", endpointURL).Int("status", resp.StatusCode).Msg("TVmaze returned non-success status")
		return apperrors.NewStatusError(op, endpointURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Warn().Err(err).Str("op", op).Str("url", endpointURL).Msg("Failed to decode TVmaze response")
		return apperrors.NewMalformedDataError(resource, err)
	}

	logger.Debug().
		Str("op", op).
		Str("url", endpointURL).
		Dur("elapsed", time.Since(start)).
		Msg("TVmaze request completed")
	return nil
}
