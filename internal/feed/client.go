// Package feed fetches recent items from the company-news feed used by the
// status-update handler and the periodic poster.
package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/pkg/constants"
)

// Item is one feed entry.
type Item struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
}

// Client fetches items from a JSON feed endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a feed client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// Latest returns up to limit of the newest feed items.
func (c *Client) Latest(limit int) ([]Item, error) {
	resp, err := c.http.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %d", resp.StatusCode)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	logger.WithField("count", len(items)).Info("feed-items-fetched")
	return items, nil
}
