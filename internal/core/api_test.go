package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPITestServer(t *testing.T) (*Engine, *httptest.Server) {
	t.Helper()
	engine, _ := newTestEngine(t)
	server := httptest.NewServer(engine.apiHandler())
	t.Cleanup(server.Close)
	return engine, server
}

func getStatus(t *testing.T, server *httptest.Server) statusResponse {
	t.Helper()
	resp, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	return status
}

func TestStatusInactiveByDefault(t *testing.T) {
	_, server := newAPITestServer(t)

	status := getStatus(t, server)
	assert.Equal(t, "INACTIVE", status.Status)
	assert.Empty(t, status.User)
}

func TestLoginThenStatusActive(t *testing.T) {
	engine, server := newAPITestServer(t)

	resp, err := http.Post(server.URL+"/auth/login?access_token=tok-abc&refresh_token=ref-xyz&user=dave", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := getStatus(t, server)
	assert.Equal(t, "ACTIVE", status.Status)
	assert.Equal(t, "dave", status.User)

	authenticated, user := engine.creds.Status()
	assert.True(t, authenticated)
	assert.Equal(t, "dave", user)
}

func TestLoginOverwritesPreviousSession(t *testing.T) {
	engine, server := newAPITestServer(t)

	resp, err := http.Post(server.URL+"/auth/login?access_token=tok-1&user=dave", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(server.URL+"/auth/login?access_token=tok-2&user=alex", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	_, user := engine.creds.Status()
	assert.Equal(t, "alex", user)
}

func TestLogoutClearsSession(t *testing.T) {
	_, server := newAPITestServer(t)

	resp, err := http.Post(server.URL+"/auth/login?access_token=tok-abc&user=dave", "", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(server.URL+"/auth/logout", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := getStatus(t, server)
	assert.Equal(t, "INACTIVE", status.Status)
}

func TestLogoutWhenNotLoggedInIsOK(t *testing.T) {
	_, server := newAPITestServer(t)

	resp, err := http.Post(server.URL+"/auth/logout", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthEndpointsRejectWrongMethod(t *testing.T) {
	_, server := newAPITestServer(t)

	resp, err := http.Get(server.URL + "/auth/login")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(server.URL + "/auth/logout")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(server.URL+"/status", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
