package music

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/pkg/constants"
)

var (
	// ErrNotAuthenticated is returned when no session is held
	ErrNotAuthenticated = errors.New("music: not authenticated")

	// ErrAuthExpired is returned when the service rejected the token. The
	// client has already cleared the session when this is returned.
	ErrAuthExpired = errors.New("music: session expired, please re-authenticate")
)

// Item is a search or lookup result: a track, album or playlist.
type Item struct {
	Name   string
	Artist string // empty for playlists
	URL    string
	URI    string
}

// TrackStatus describes the currently playing track.
type TrackStatus struct {
	Track    string
	Artist   string
	Album    string
	Released string
	URL      string
}

// Client is a thin REST client for the music service. Every call reads the
// token from the credential store; a 401 from any endpoint logs the session
// out so stale tokens do not cause repeated failed calls.
type Client struct {
	baseURL string
	creds   *Credentials
	http    *http.Client
}

// NewClient creates a client against baseURL using the given credential store.
func NewClient(baseURL string, creds *Credentials) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// request performs one authenticated call and decodes a JSON body into out
// when out is non-nil. Responds to 401 by clearing the session.
func (c *Client) request(method, path string, body interface{}, out interface{}) error {
	token := c.creds.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("music request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Warn("music-token-rejected-clearing-session")
		c.creds.Logout()
		return ErrAuthExpired
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("music service returned %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// searchResponse mirrors the fields of the search payload the handlers need.
type searchResponse struct {
	Tracks    *resultSet `json:"tracks"`
	Albums    *resultSet `json:"albums"`
	Playlists *resultSet `json:"playlists"`
}

type resultSet struct {
	Items []resultItem `json:"items"`
}

type resultItem struct {
	Name         string `json:"name"`
	URI          string `json:"uri"`
	ExternalURLs struct {
		Page string `json:"spotify"`
	} `json:"external_urls"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

// Search looks up the first matching item of the given kind ("track", "album"
// or "playlist").
func (c *Client) Search(query, kind string) (Item, error) {
	logger.WithFields(logrus.Fields{
		"query": query,
		"kind":  kind,
	}).Info("music-search")

	path := "/v1/search?q=" + url.QueryEscape(query) + "&type=" + url.QueryEscape(kind)

	var resp searchResponse
	if err := c.request(http.MethodGet, path, nil, &resp); err != nil {
		return Item{}, err
	}

	var set *resultSet
	switch kind {
	case "track":
		set = resp.Tracks
	case "album":
		set = resp.Albums
	case "playlist":
		set = resp.Playlists
	default:
		return Item{}, fmt.Errorf("music: unknown search kind %q", kind)
	}

	if set == nil || len(set.Items) == 0 {
		return Item{}, fmt.Errorf("music: no %s found for %q", kind, query)
	}

	first := set.Items[0]
	item := Item{Name: first.Name, URL: first.ExternalURLs.Page, URI: first.URI}
	if (kind == "track" || kind == "album") && len(first.Artists) > 0 {
		item.Artist = first.Artists[0].Name
	}
	return item, nil
}

// PlayTrack starts playback of a single track URI.
func (c *Client) PlayTrack(uri string) error {
	body := map[string][]string{"uris": {uri}}
	return c.request(http.MethodPut, "/v1/me/player/play", body, nil)
}

// PlayContext starts playback of an album or playlist URI.
func (c *Client) PlayContext(contextURI string) error {
	body := map[string]string{"context_uri": contextURI}
	return c.request(http.MethodPut, "/v1/me/player/play", body, nil)
}

type currentlyPlayingResponse struct {
	Item struct {
		Name         string `json:"name"`
		ExternalURLs struct {
			Page string `json:"spotify"`
		} `json:"external_urls"`
		Album struct {
			Name        string `json:"name"`
			ReleaseDate string `json:"release_date"`
			Artists     []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"album"`
	} `json:"item"`
}

// CurrentlyPlaying reports the track the player is on right now.
func (c *Client) CurrentlyPlaying() (TrackStatus, error) {
	var resp currentlyPlayingResponse
	if err := c.request(http.MethodGet, "/v1/me/player/currently-playing", nil, &resp); err != nil {
		return TrackStatus{}, err
	}

	status := TrackStatus{
		Track:    resp.Item.Name,
		Album:    resp.Item.Album.Name,
		Released: resp.Item.Album.ReleaseDate,
		URL:      resp.Item.ExternalURLs.Page,
	}
	if len(resp.Item.Album.Artists) > 0 {
		status.Artist = resp.Item.Album.Artists[0].Name
	}
	return status, nil
}

// Skip moves playback to the next or previous track.
func (c *Client) Skip(forward bool) error {
	path := "/v1/me/player/previous"
	if forward {
		path = "/v1/me/player/next"
	}
	return c.request(http.MethodPost, path, nil, nil)
}

// SetShuffle enables or disables shuffle mode.
func (c *Client) SetShuffle(enabled bool) error {
	return c.request(http.MethodPut, "/v1/me/player/shuffle?state="+strconv.FormatBool(enabled), nil, nil)
}

// SetVolume changes the playback volume percentage.
func (c *Client) SetVolume(percent int) error {
	if percent < 0 || percent > constants.DefaultVolumeMax {
		return fmt.Errorf("music: volume %d out of range", percent)
	}
	return c.request(http.MethodPut, "/v1/me/player/volume?volume_percent="+strconv.Itoa(percent), nil, nil)
}

type playlistResponse struct {
	Name         string `json:"name"`
	URI          string `json:"uri"`
	ExternalURLs struct {
		Page string `json:"spotify"`
	} `json:"external_urls"`
}

// Playlist fetches a playlist by ID.
func (c *Client) Playlist(id string) (Item, error) {
	var resp playlistResponse
	if err := c.request(http.MethodGet, "/v1/playlists/"+url.PathEscape(id), nil, &resp); err != nil {
		return Item{}, err
	}
	return Item{Name: resp.Name, URL: resp.ExternalURLs.Page, URI: resp.URI}, nil
}

// AddToPlaylist appends a track to a playlist.
func (c *Client) AddToPlaylist(playlistID, trackURI string) error {
	path := "/v1/playlists/" + url.PathEscape(playlistID) + "/tracks?uris=" + url.QueryEscape(trackURI)
	return c.request(http.MethodPost, path, nil, nil)
}
