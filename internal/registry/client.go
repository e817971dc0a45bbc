package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fbkclanna/cargows/internal/apperr"
	"github.com/fbkclanna/cargows/internal/logging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultBaseURL is the public crates.io registry.
const DefaultBaseURL = "https://crates.io"

const cacheSize = 512

// Client fetches crate metadata. Successful lookups are memoized for the
// lifetime of the client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
	Logger     *log.Logger

	cache *lru.Cache[string, string]
}

// NewClient returns a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL, userAgent string, logger *log.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating registry cache: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  userAgent,
		Logger:     logger,
		cache:      cache,
	}, nil
}

// crateResponse is the subset of GET /api/v1/crates/{name} we read.
type crateResponse struct {
	Crate *struct {
		MaxVersion *string `json:"max_version"`
	} `json:"crate"`
}

// LatestVersion returns crate.max_version for the named crate.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty crate name", apperr.ErrInvalidArgument)
	}
	if v, ok := c.cache.Get(name); ok {
		c.Logger.Debug("registry cache hit", "crate", name, "version", v)
		return v, nil
	}

	endpoint := c.BaseURL + "/api/v1/crates/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	c.Logger.Debug("registry lookup", "url", endpoint)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: crate %q in registry %s", apperr.ErrNotFound, name, c.BaseURL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("fetching %s: unexpected status %s", endpoint, resp.Status)
	}

	var body crateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decoding registry response for %s: %w", apperr.ErrParse, name, err)
	}
	if body.Crate == nil || body.Crate.MaxVersion == nil || *body.Crate.MaxVersion == "" {
		return "", fmt.Errorf("%w: registry response for %s has no crate.max_version", apperr.ErrParse, name)
	}

	v := *body.Crate.MaxVersion
	c.cache.Add(name, v)
	return v, nil
}
