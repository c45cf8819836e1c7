package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// Client defines the interface for querying the TVmaze API.
// Both calls are single GETs: no retry, no backoff.
type Client interface {
	// SearchShows returns the raw search hits for term, in API order.
	SearchShows(ctx context.Context, term string) ([]models.RawSearchHit, error)

	// ListEpisodes returns the raw episode list of one show, in API order.
	ListEpisodes(ctx context.Context, showID int) ([]models.RawEpisode, error)

	// Close releases idle connections held by the client.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a TVmaze client from cfg. A malformed client_timeout or
// proxy_connection_string is logged and ignored.
func NewClient(cfg *config.Config) Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFor(cfg.ProxyConnectionString)

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}
	baseURL := strings.TrimRight(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   timeoutFor(cfg.ClientTimeout),
			Transport: newDecodingTransport(transport, userAgent),
		},
		baseURL: baseURL,
	}
}

// timeoutFor parses client_timeout. Empty or invalid means no timeout.
func timeoutFor(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("timeout", raw).Msg("Invalid client_timeout, requests will not time out")
		return 0
	}
	return d
}

// proxyFor returns the transport proxy for raw, falling back to the
// environment proxy settings when raw is empty or invalid.
func proxyFor(raw string) func(*http.Request) (*url.URL, error) {
	if raw == "" {
		return http.ProxyFromEnvironment
	}
	proxyURL, err := url.Parse(raw)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("proxy", raw).Msg("Invalid proxy URL, continuing without proxy")
		return http.ProxyFromEnvironment
	}
	return http.ProxyURL(proxyURL)
}

// Close releases idle connections held by the underlying transport.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
