// Package session owns the bearer token for the lifetime of the process.
//
// The token lives only in memory. A new Session never reads a token back
// from storage, so every cold start requires a fresh login. Logout also
// deletes any token an older client may have persisted.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-client/internal/api"
	"github.com/robalobadob/wordle/apps/go-client/internal/store"
)

// Session is the explicit, app-owned replacement for an ambient auth context.
type Session struct {
	client *api.Client
	store  store.Store

	mu    sync.RWMutex
	token string
}

// New returns a logged-out session that authenticates through client.
func New(client *api.Client, st store.Store) *Session {
	return &Session{client: client, store: st}
}

// Login exchanges credentials for a token and keeps it in memory.
// On failure any previous token is left as it was.
func (s *Session) Login(ctx context.Context, username, password string) error {
	tok, err := s.client.Login(ctx, username, password)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("login failed")
		return err
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	log.Info().Str("username", username).Msg("logged in")
	return nil
}

// Logout forgets the in-memory token and removes any persisted copy.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	if err := s.store.Delete(ctx, store.KeyToken); err != nil {
		return err
	}
	log.Info().Msg("session closed")
	return nil
}

// Token implements api.TokenSource.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	_, ok := s.Token()
	return ok
}

// API returns a client that authenticates with this session's token.
func (s *Session) API() *api.Client { return s.client.WithTokens(s) }

// Username returns the username claim of the current token, or "".
// Claims are read without verification and are for display only.
func (s *Session) Username() string {
	claims := s.claims()
	if claims == nil {
		return ""
	}
	if u, ok := claims["username"].(string); ok {
		return u
	}
	sub, _ := claims.GetSubject()
	return sub
}

// ExpiresAt returns the exp claim of the current token, if any.
func (s *Session) ExpiresAt() (time.Time, bool) {
	claims := s.claims()
	if claims == nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Session) claims() jwt.MapClaims {
	tok, ok := s.Token()
	if !ok {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return nil
	}
	return claims
}
