package state

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/mobil-koeln/gomate/internal/api"
	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/session"
	"github.com/mobil-koeln/gomate/internal/storage"
)

// ErrSuperseded is returned by the blocking actions when their result was
// discarded because a newer request or a reset came in first
var ErrSuperseded = errors.New("result superseded by a newer request")

// Remote fetches line data
type Remote interface {
	FetchLineStatusResult(ctx context.Context, modes []string) api.StatusResult
	FetchArrivals(ctx context.Context, lineID string) []models.Arrival
}

// Sessions performs session operations
type Sessions interface {
	Login(ctx context.Context, username, password string) (session.Session, error)
	Persist(ctx context.Context, sess session.Session)
	Logout(ctx context.Context)
	Restore(ctx context.Context) (session.Session, bool)
	Wait()
}

type category int

const (
	catStatus category = iota
	catArrivals
	catLogin
	numCategories
)

// Container owns the application state. Every change goes through apply,
// which holds the lock, recomputes derived flags and notifies subscribers
// once the lock is released.
type Container struct {
	remote   Remote
	sessions Sessions
	store    storage.Store
	writer   *writer
	logger   *slog.Logger

	// sessionMu orders accepted-login persistence against logout removal
	sessionMu sync.Mutex

	mu      sync.Mutex
	state   AppState
	gens    [numCategories]uint64
	version uint64

	subMu    sync.Mutex
	subs     map[int]func(AppState)
	nextSub  int
	notified uint64
}

// Option configures a Container
type Option func(*Container)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) {
		c.logger = l
	}
}

// New creates a container with the initial state. A nil store keeps
// preferences in memory only.
func New(remote Remote, sessions Sessions, store storage.Store, opts ...Option) *Container {
	c := &Container{
		remote:   remote,
		sessions: sessions,
		logger:   slog.Default(),
		state:    initialState(),
		subs:     make(map[int]func(AppState)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if store == nil {
		store = storage.NewMemoryStore()
	}
	c.store = store
	c.writer = newWriter(store, c.logger)
	return c
}

// Snapshot returns a deep copy of the current state
func (c *Container) Snapshot() AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every change. fn runs
// on the goroutine that made the change. The returned func unsubscribes.
func (c *Container) Subscribe(fn func(AppState)) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// apply runs fn under the state lock. fn reports whether it changed the
// state; unchanged states are neither versioned nor published.
func (c *Container) apply(fn func(s *AppState) bool) (AppState, bool) {
	c.mu.Lock()
	if !fn(&c.state) {
		snap := c.state.Clone()
		c.mu.Unlock()
		return snap, false
	}

	auth := &c.state.Auth
	auth.IsAuthenticated = auth.Token != "" && auth.User != nil

	c.version++
	version := c.version
	snap := c.state.Clone()
	c.mu.Unlock()

	c.notify(version, snap)
	return snap, true
}

// notify publishes snap unless a newer version was already published
func (c *Container) notify(version uint64, snap AppState) {
	c.subMu.Lock()
	if version <= c.notified {
		c.subMu.Unlock()
		return
	}
	c.notified = version
	subs := make([]func(AppState), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(snap.Clone())
	}
}

// persistLocked queues a write-through job. Must be called from inside apply
// so jobs are queued in the same order as the changes they record.
func (c *Container) persistLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("failed to encode preference", "key", key, "error", err)
		return
	}
	c.writer.enqueue(writeJob{key: key, value: data})
}

// Flush blocks until queued preference writes have been attempted
func (c *Container) Flush() {
	c.writer.flush()
}

// Close drains pending writes and background logouts
func (c *Container) Close() {
	c.writer.close()
	if c.sessions != nil {
		c.sessions.Wait()
	}
}

// Restore loads persisted favorites, theme and session. Corrupt values are
// logged and skipped. Nothing is written back.
func (c *Container) Restore(ctx context.Context) {
	favorites, hasFavorites, err := storage.GetJSON[[]models.LineStatus](ctx, c.store, storage.KeyFavorites)
	if err != nil {
		c.logger.Warn("ignoring stored favorites", "error", err)
	}

	dark, hasTheme, err := storage.GetJSON[bool](ctx, c.store, storage.KeyDarkMode)
	if err != nil {
		c.logger.Warn("ignoring stored theme", "error", err)
	}

	var sess session.Session
	var hasSession bool
	if c.sessions != nil {
		sess, hasSession = c.sessions.Restore(ctx)
	}

	c.apply(func(s *AppState) bool {
		if hasFavorites {
			s.Transport.Favorites = dedupeLines(favorites)
		}
		if hasTheme {
			s.Theme.IsDarkMode = dark
		}
		if hasSession {
			s.Auth.Token = sess.Token
			s.Auth.User = sess.User.Clone()
			s.Auth.Error = ""
		}
		return hasFavorites || hasTheme || hasSession
	})

	c.logger.Debug("restored preferences",
		"favorites", hasFavorites,
		"theme", hasTheme,
		"session", hasSession,
	)
}

// dedupeLines keeps the first line for each ID
func dedupeLines(lines []models.LineStatus) []models.LineStatus {
	seen := make(map[string]bool, len(lines))
	out := make([]models.LineStatus, 0, len(lines))
	for _, l := range lines {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l.Clone())
	}
	return out
}
