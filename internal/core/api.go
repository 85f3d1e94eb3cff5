package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wickhamj/banterbot/internal/logger"
	"github.com/wickhamj/banterbot/internal/music"
	"github.com/wickhamj/banterbot/pkg/constants"
)

// statusResponse is the JSON body of GET /status.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	User    string `json:"user,omitempty"`
}

// apiHandler builds the auth/status HTTP surface. Callers inside the
// deployment's network boundary are trusted; there is no signature
// verification on the auth endpoints.
func (e *Engine) apiHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", e.handleAuthLogin)
	mux.HandleFunc("/auth/logout", e.handleAuthLogout)
	mux.HandleFunc("/status", e.handleAuthStatus)
	return mux
}

// startAPIServer runs the HTTP surface until Stop shuts it down.
func (e *Engine) startAPIServer() {
	addr := fmt.Sprintf(":%d", e.config.APIServer.Port)

	srv := &http.Server{Addr: addr, Handler: e.apiHandler()}

	e.apiMu.Lock()
	e.apiServer = srv
	e.apiMu.Unlock()

	logger.WithField("address", addr).Info("api-server-listening")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorf("api-server-error: %v", err)
	}

	logger.Info("api-server-stopped")
}

// stopAPIServer gracefully shuts the HTTP surface down.
func (e *Engine) stopAPIServer() {
	e.apiMu.Lock()
	srv := e.apiServer
	e.apiServer = nil
	e.apiMu.Unlock()

	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.APIShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("failed-to-gracefully-stop-api-server: %v", err)
		srv.Close()
	}
}

// handleAuthLogin stores the session supplied in the query parameters.
func (e *Engine) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger.Info("auth-login-request-received")

	query := r.URL.Query()
	e.creds.Login(music.Session{
		AccessToken:  query.Get("access_token"),
		RefreshToken: query.Get("refresh_token"),
		User:         query.Get("user"),
	})

	w.WriteHeader(http.StatusOK)
}

// handleAuthLogout clears the stored session.
func (e *Engine) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger.Info("auth-logout-request-received")
	e.creds.Logout()

	w.WriteHeader(http.StatusOK)
}

// handleAuthStatus reports whether a music session is held.
func (e *Engine) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := statusResponse{Status: "INACTIVE", Message: "not logged in..."}
	if authenticated, user := e.creds.Status(); authenticated {
		resp = statusResponse{Status: "ACTIVE", Message: "logged in...", User: user}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("failed-to-encode-status-response: %v", err)
	}
}
