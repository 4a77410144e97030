package state

import (
	"context"

	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/storage"
)

// ToggleFavorite adds the line to favorites, or removes it when a line with
// the same ID is already there. The full set is persisted.
func (c *Container) ToggleFavorite(item models.LineStatus) []models.LineStatus {
	snap, _ := c.apply(func(s *AppState) bool {
		favs := s.Transport.Favorites
		next := make([]models.LineStatus, 0, len(favs)+1)
		found := false
		for _, f := range favs {
			if f.ID == item.ID {
				found = true
				continue
			}
			next = append(next, f)
		}
		if !found {
			next = append(next, item.Clone())
		}

		s.Transport.Favorites = next
		c.persistLocked(storage.KeyFavorites, next)
		return true
	})
	return snap.Transport.Favorites
}

// LoadFavorites replaces favorites without persisting them. It installs
// a list that was just read from the store, so writing it back would only
// rewrite the same value. Every other favorites mutation persists.
func (c *Container) LoadFavorites(list []models.LineStatus) {
	c.apply(func(s *AppState) bool {
		s.Transport.Favorites = dedupeLines(list)
		return true
	})
}

// SetSearchQuery stores the search text as given
func (c *Container) SetSearchQuery(q string) {
	c.apply(func(s *AppState) bool {
		if s.Transport.SearchQuery == q {
			return false
		}
		s.Transport.SearchQuery = q
		return true
	})
}

// ToggleTheme flips dark mode and persists the new value
func (c *Container) ToggleTheme() bool {
	snap, _ := c.apply(func(s *AppState) bool {
		s.Theme.IsDarkMode = !s.Theme.IsDarkMode
		c.persistLocked(storage.KeyDarkMode, s.Theme.IsDarkMode)
		return true
	})
	return snap.Theme.IsDarkMode
}

// SetTheme sets dark mode and persists it
func (c *Container) SetTheme(dark bool) {
	c.apply(func(s *AppState) bool {
		s.Theme.IsDarkMode = dark
		c.persistLocked(storage.KeyDarkMode, dark)
		return true
	})
}

// ClearArrivals resets the arrivals view. A fetch still in flight is
// invalidated so its result cannot repopulate the list.
func (c *Container) ClearArrivals() {
	c.apply(func(s *AppState) bool {
		c.gens[catArrivals]++
		s.Transport.Arrivals = []models.Arrival{}
		s.Transport.ArrivalsLine = ""
		s.Transport.ArrivalsLoading = false
		s.Transport.ArrivalsError = ""
		return true
	})
}

// ClearError clears every error message
func (c *Container) ClearError() {
	c.apply(func(s *AppState) bool {
		if s.Auth.Error == "" && s.Transport.Error == "" && s.Transport.ArrivalsError == "" {
			return false
		}
		s.Auth.Error = ""
		s.Transport.Error = ""
		s.Transport.ArrivalsError = ""
		return true
	})
}

// Logout clears the session at once and removes the persisted copy in the
// background. A login still in flight is invalidated.
func (c *Container) Logout(ctx context.Context) {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	c.apply(func(s *AppState) bool {
		c.gens[catLogin]++
		s.Auth.Token = ""
		s.Auth.User = nil
		s.Auth.Loading = false
		s.Auth.Error = ""
		return true
	})

	if c.sessions != nil {
		c.sessions.Logout(ctx)
	}
}
