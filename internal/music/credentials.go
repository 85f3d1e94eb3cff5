// Package music provides the music-service session store and REST client used
// by the playback handlers.
package music

import (
	"sync"

	"github.com/wickhamj/banterbot/internal/logger"
)

// Session holds one music-service login as supplied by the auth endpoint.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         string
}

// Credentials is the process-wide holder of the music-service session.
//
// The store is either fully authenticated (all three fields set) or fully
// empty; Login and Logout replace the whole session atomically so no partial
// state is ever observable. The dispatch goroutine reads it, the auth HTTP
// surface writes it, and any client call that sees a 401 clears it; writes
// from those surfaces interleave arbitrarily and last write wins.
type Credentials struct {
	mu      sync.RWMutex
	session Session
}

// NewCredentials returns an empty, unauthenticated store.
func NewCredentials() *Credentials {
	return &Credentials{}
}

// Login unconditionally overwrites the stored session. The caller is trusted;
// no token-shape validation is performed.
func (c *Credentials) Login(s Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	logger.WithField("user", s.User).Info("music-session-logged-in")
}

// Logout unconditionally clears the stored session. Safe to call when already
// logged out.
func (c *Credentials) Logout() {
	c.mu.Lock()
	user := c.session.User
	c.session = Session{}
	c.mu.Unlock()

	logger.WithField("user", user).Info("music-session-logged-out")
}

// Status reports whether a session is held and, if so, the authenticated
// user's display name.
func (c *Credentials) Status() (authenticated bool, user string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.AccessToken != "", c.session.User
}

// Token returns the current access token, or the empty string when logged out.
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.AccessToken
}
