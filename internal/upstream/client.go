package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pquerna/cachecontrol/cacheobject"
	log "github.com/sirupsen/logrus"

	"keyword-match-service/internal/domain"
)

// Client fetches keyword sets from the hosted keywords API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	defaultTTL time.Duration
}

type apiResponse struct {
	Regex domain.KeywordSet `json:"regex"`
}

func NewClient(baseURL string, timeout, defaultTTL time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		defaultTTL: defaultTTL,
	}
}

// Fetch downloads the keyword set for filter plus optional version. The
// returned TTL honors the response's Cache-Control max-age and falls back
// to the configured default when the header is absent or unusable.
func (c *Client) Fetch(ctx context.Context, filter, version string) (*domain.KeywordSet, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	q := url.Values{}
	q.Set("filter", filter)
	if version != "" {
		q.Set("version", version)
	}
	req.URL.RawQuery = q.Encode()

	log.WithFields(log.Fields{
		"filter":  filter,
		"version": version,
	}).Debug("fetching keyword set from upstream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: upstream returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstreamDecode, err)
	}

	return &payload.Regex, c.ttlFrom(resp.Header.Get("Cache-Control")), nil
}

func (c *Client) ttlFrom(header string) time.Duration {
	if header == "" {
		return c.defaultTTL
	}
	directives, err := cacheobject.ParseResponseCacheControl(header)
	if err != nil || directives.MaxAge <= 0 {
		return c.defaultTTL
	}
	return time.Duration(directives.MaxAge) * time.Second
}
