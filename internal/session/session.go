// Package session handles login, logout and restoring a persisted session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mobil-koeln/gomate/internal/api"
	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/storage"
)

// defaultLoginMessage is reported when a failure carries no usable text
const defaultLoginMessage = "Login failed"

// Authenticator exchanges credentials for a login payload
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
}

// Session is an authenticated (or anonymous) user session
type Session struct {
	Token string
	User  *models.UserProfile

	raw []byte // login payload, stored as userData by Persist
}

// IsAuthenticated reports whether both a token and a profile are present
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// LoginError is returned when a login attempt fails. Message is suitable
// for showing to the user.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

func newLoginError(err error) *LoginError {
	le := &LoginError{Message: defaultLoginMessage, Err: err}

	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "":
		le.Message = strings.TrimSpace(apiErr.Message)
	case err != nil && strings.TrimSpace(err.Error()) != "":
		le.Message = err.Error()
	}
	return le
}

// ExtractToken returns the bearer token from a login payload. Newer
// payloads use "accessToken", older ones "token"; the first non-empty
// string wins.
func ExtractToken(payload []byte) (string, bool) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "", false
	}
	for _, key := range []string{"accessToken", "token"} {
		if s, ok := fields[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// Manager performs session operations against an Authenticator and
// persists the result in a Store
type Manager struct {
	auth   Authenticator
	store  storage.Store
	logger *slog.Logger

	mu         sync.Mutex
	lastLogout chan struct{} // closed once the most recent removal finished
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a session manager
func NewManager(auth Authenticator, store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		auth:   auth,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates without touching the store. A payload without a
// token still succeeds, but the returned session is not authenticated.
// Failures are returned as *LoginError. Call Persist once the session is
// accepted.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return Session{}, newLoginError(err)
	}

	user, err := models.ParseUserProfile(resp.Raw)
	if err != nil {
		return Session{}, newLoginError(fmt.Errorf("%w: %w", api.ErrMalformedResponse, err))
	}

	token, ok := ExtractToken(resp.Raw)
	if !ok {
		m.logger.Warn("login response carried no token", "username", username)
	}

	return Session{Token: token, User: user, raw: resp.Raw}, nil
}

// Persist stores the session after any earlier logout removal finished.
// Write errors are logged. Callers must not run Persist concurrently with
// Logout.
func (m *Manager) Persist(ctx context.Context, sess Session) {
	m.Wait()

	ctx = context.WithoutCancel(ctx)
	if sess.Token != "" {
		if err := storage.SetJSON(ctx, m.store, storage.KeyUserToken, sess.Token); err != nil {
			m.logger.Warn("failed to persist token", "error", err)
		}
	}
	if len(sess.raw) == 0 {
		return
	}
	if err := m.store.Set(ctx, storage.KeyUserData, sess.raw); err != nil {
		m.logger.Warn("failed to persist user data", "error", err)
	}
}

// Logout removes the persisted session in the background. It never fails;
// removal errors are logged. Removals run in call order. Use Wait to block
// until they finished.
func (m *Manager) Logout(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	m.mu.Lock()
	prev := m.lastLogout
	done := make(chan struct{})
	m.lastLogout = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		if err := m.store.Remove(ctx, storage.KeyUserToken, storage.KeyUserData); err != nil {
			m.logger.Warn("failed to remove session", "error", err)
		}
	}()
}

// Wait blocks until background logouts have finished
func (m *Manager) Wait() {
	m.mu.Lock()
	done := m.lastLogout
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Restore loads a persisted session. Both the token and the profile must
// be present and decodable; anything else yields an anonymous session.
// The token is not validated against the server.
func (m *Manager) Restore(ctx context.Context) (Session, bool) {
	token, ok, err := storage.GetJSON[string](ctx, m.store, storage.KeyUserToken)
	if err != nil {
		m.logger.Warn("ignoring stored token", "error", err)
		return Session{}, false
	}
	if !ok || token == "" {
		return Session{}, false
	}

	data, ok, err := m.store.Get(ctx, storage.KeyUserData)
	if err != nil {
		m.logger.Warn("failed to read stored user data", "error", err)
		return Session{}, false
	}
	if !ok {
		return Session{}, false
	}

	user, err := models.ParseUserProfile(data)
	if err != nil {
		m.logger.Warn("ignoring stored user data", "error", err)
		return Session{}, false
	}

	return Session{Token: token, User: user, raw: data}, true
}
