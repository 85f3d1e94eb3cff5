// Package advice fetches one-liners from the advice-slip API for the
// words-of-wisdom handler.
package advice

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/pkg/constants"
)

type slipResponse struct {
	Slip struct {
		Advice string `json:"advice"`
	} `json:"slip"`
}

// Client fetches advice slips from the configured endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates an advice client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// Random returns one piece of advice.
func (c *Client) Random() (string, error) {
	resp, err := c.http.Get(c.url)
	if err != nil {
		return "", fmt.Errorf("advice request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice service returned %d", resp.StatusCode)
	}

	var slip slipResponse
	if err := json.NewDecoder(resp.Body).Decode(&slip); err != nil {
		return "", fmt.Errorf("failed to decode advice: %w", err)
	}
	if slip.Slip.Advice == "" {
		return "", fmt.Errorf("advice service returned an empty slip")
	}

	logger.Debug("advice-slip-fetched")
	return slip.Slip.Advice, nil
}
