package feed

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestLimitsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"title":"one","url":"https://example.com/1"},
			{"title":"two","url":"https://example.com/2"},
			{"title":"three","url":"https://example.com/3"}
		]`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).Latest(2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].Title)
	assert.Equal(t, "two", items[1].Title)
}

func TestLatestZeroLimitReturnsAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"title":"one"},{"title":"two"}]`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).Latest(0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestLatestUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Latest(5)
	assert.Error(t, err)
}

func TestLatestBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Latest(5)
	assert.Error(t, err)
}
