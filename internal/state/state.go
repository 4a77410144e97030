// Package state holds the application state and is its only writer.
package state

import (
	"github.com/mobil-koeln/gomate/internal/models"
)

// AuthState is the session slice of the application state
type AuthState struct {
	Token           string              `json:"-"`
	User            *models.UserProfile `json:"user,omitempty"`
	IsAuthenticated bool                `json:"isAuthenticated"`
	Loading         bool                `json:"loading"`
	Error           string              `json:"error,omitempty"`
}

// TransportState is the line status slice of the application state
type TransportState struct {
	Items           []models.LineStatus `json:"items"`
	Favorites       []models.LineStatus `json:"favorites"`
	Arrivals        []models.Arrival    `json:"arrivals"`
	Loading         bool                `json:"loading"`
	ArrivalsLoading bool                `json:"arrivalsLoading"`
	Error           string              `json:"error,omitempty"`
	ArrivalsError   string              `json:"arrivalsError,omitempty"`
	SearchQuery     string              `json:"searchQuery"`

	// Source is "live" or "fallback" once a status fetch has resolved
	Source string `json:"source,omitempty"`
	// ArrivalsLine is the line the current arrivals belong to
	ArrivalsLine string `json:"arrivalsLine,omitempty"`
}

// ThemeState is the appearance slice of the application state
type ThemeState struct {
	IsDarkMode bool `json:"isDarkMode"`
}

// AppState is the full application state
type AppState struct {
	Auth      AuthState      `json:"auth"`
	Transport TransportState `json:"transport"`
	Theme     ThemeState     `json:"theme"`
}

// Clone returns a deep copy that shares no memory with s
func (s AppState) Clone() AppState {
	s.Auth.User = s.Auth.User.Clone()
	s.Transport.Items = models.CloneLines(s.Transport.Items)
	s.Transport.Favorites = models.CloneLines(s.Transport.Favorites)
	if s.Transport.Arrivals != nil {
		s.Transport.Arrivals = append([]models.Arrival(nil), s.Transport.Arrivals...)
	}
	return s
}

func initialState() AppState {
	return AppState{
		Transport: TransportState{
			Items:     []models.LineStatus{},
			Favorites: []models.LineStatus{},
			Arrivals:  []models.Arrival{},
		},
	}
}
