package music

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedClient(t *testing.T, handler http.HandlerFunc) (*Client, *Credentials) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := NewCredentials()
	creds.Login(Session{AccessToken: "token", RefreshToken: "refresh", User: "u"})
	return NewClient(srv.URL, creds), creds
}

func TestRequestWithoutSession(t *testing.T) {
	client := NewClient("http://unused.invalid", NewCredentials())

	_, err := client.Search("some song", "track")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUnauthorizedClearsSession(t *testing.T) {
	client, creds := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Search("some song", "track")
	assert.ErrorIs(t, err, ErrAuthExpired)

	authenticated, _ := creds.Status()
	assert.False(t, authenticated, "401 must log the session out immediately")
}

func TestSearchTrack(t *testing.T) {
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "some song", r.URL.Query().Get("q"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))

		w.Write([]byte(`{"tracks":{"items":[{
			"name":"Some Song",
			"uri":"track:uri:1",
			"external_urls":{"spotify":"https://example.com/t1"},
			"artists":[{"name":"Some Artist"}]
		}]}}`))
	})

	item, err := client.Search("some song", "track")
	require.NoError(t, err)
	assert.Equal(t, "Some Song", item.Name)
	assert.Equal(t, "Some Artist", item.Artist)
	assert.Equal(t, "track:uri:1", item.URI)
	assert.Equal(t, "https://example.com/t1", item.URL)
}

func TestSearchNoResults(t *testing.T) {
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playlists":{"items":[]}}`))
	})

	_, err := client.Search("nothing", "playlist")
	assert.Error(t, err)
}

func TestSearchUnknownKind(t *testing.T) {
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Search("x", "podcast")
	assert.Error(t, err)
}

func TestPlayTrackSendsURIs(t *testing.T) {
	var gotBody string
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/me/player/play", r.URL.Path)
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
	})

	require.NoError(t, client.PlayTrack("track:uri:1"))
	assert.Contains(t, gotBody, `"uris":["track:uri:1"]`)
}

func TestCurrentlyPlaying(t *testing.T) {
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/me/player/currently-playing", r.URL.Path)
		w.Write([]byte(`{"item":{
			"name":"Track A",
			"external_urls":{"spotify":"https://example.com/a"},
			"album":{"name":"Album A","release_date":"2001-05-01","artists":[{"name":"Artist A"}]}
		}}`))
	})

	status, err := client.CurrentlyPlaying()
	require.NoError(t, err)
	assert.Equal(t, "Track A", status.Track)
	assert.Equal(t, "Artist A", status.Artist)
	assert.Equal(t, "Album A", status.Album)
	assert.Equal(t, "2001-05-01", status.Released)
}

func TestSkipDirections(t *testing.T) {
	var paths []string
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
	})

	require.NoError(t, client.Skip(true))
	require.NoError(t, client.Skip(false))
	assert.Equal(t, []string{"/v1/me/player/next", "/v1/me/player/previous"}, paths)
}

func TestSetVolumeRange(t *testing.T) {
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "45", r.URL.Query().Get("volume_percent"))
	})

	require.NoError(t, client.SetVolume(45))
	assert.Error(t, client.SetVolume(-1))
	assert.Error(t, client.SetVolume(250))
}

func TestSetShuffle(t *testing.T) {
	var state string
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		state = r.URL.Query().Get("state")
	})

	require.NoError(t, client.SetShuffle(true))
	assert.Equal(t, "true", state)
}

func TestAddToPlaylist(t *testing.T) {
	client, _ := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/playlists/pl1/tracks", r.URL.Path)
		assert.Equal(t, "track:uri:9", r.URL.Query().Get("uris"))
	})

	require.NoError(t, client.AddToPlaylist("pl1", "track:uri:9"))
}

func TestServerErrorIsNotAuthError(t *testing.T) {
	client, creds := authedClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.PlayTrack("track:uri:1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthExpired)

	authenticated, _ := creds.Status()
	assert.True(t, authenticated, "non-401 failures must not clear the session")
}
