package advice

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomReturnsSlip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slip":{"id":42,"advice":"measure twice, cut once."}}`))
	}))
	defer srv.Close()

	tip, err := NewClient(srv.URL).Random()
	require.NoError(t, err)
	assert.Equal(t, "measure twice, cut once.", tip)
}

func TestRandomUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Random()
	assert.Error(t, err)
}

func TestRandomEmptySlip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slip":{}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Random()
	assert.Error(t, err)
}

func TestRandomBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Random()
	assert.Error(t, err)
}
