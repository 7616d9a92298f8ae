// Package statink provides a client for the stat.ink public API,
// used to populate the static weapon reference table.
package statink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abrezinsky/inkstats/internal/logger"
)

// DefaultBaseURL is the public stat.ink API root
const DefaultBaseURL = "https://stat.ink/api/v2"

// KeyRef is a nested reference object carrying only the key we need
type KeyRef struct {
	Key string `json:"key"`
}

// Weapon is one weapon entry from the stat.ink catalog. ReskinOf and
// MainRef are weapon keys, not ids; the caller resolves them against
// the full catalog.
type Weapon struct {
	Key      string  `json:"key"`
	Splatnet int     `json:"splatnet"`
	Type     KeyRef  `json:"type"`
	Sub      KeyRef  `json:"sub"`
	Special  KeyRef  `json:"special"`
	MainRef  string  `json:"main_ref"`
	ReskinOf *string `json:"reskin_of"`
}

// Client defines the interface for stat.ink operations
type Client interface {
	// FetchWeapons retrieves the full weapon catalog
	FetchWeapons(ctx context.Context) ([]Weapon, error)
	// BaseURL returns the configured API base URL
	BaseURL() string
}

// HTTPClient is a real HTTP client for stat.ink
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewHTTPClient creates a new stat.ink HTTP client
func NewHTTPClient(baseURL string, log logger.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// BaseURL returns the configured API base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// FetchWeapons retrieves the full weapon catalog
func (c *HTTPClient) FetchWeapons(ctx context.Context) ([]Weapon, error) {
	url := c.baseURL + "/weapon"
	c.log.Debug("fetching weapon catalog", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weapon catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weapon catalog request returned %d: %s", resp.StatusCode, body)
	}

	var weapons []Weapon
	if err := json.NewDecoder(resp.Body).Decode(&weapons); err != nil {
		return nil, fmt.Errorf("weapon catalog decode failed: %w", err)
	}

	c.log.Debug("fetched weapon catalog", "count", len(weapons))
	return weapons, nil
}
