package state

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/gomate/internal/api"
	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/session"
)

// StatusResultMsg completes a status fetch
type StatusResultMsg struct {
	gen    uint64
	Result api.StatusResult
}

// ArrivalsResultMsg completes an arrivals fetch
type ArrivalsResultMsg struct {
	gen      uint64
	LineID   string
	Arrivals []models.Arrival
	Err      error
}

// LoginResultMsg completes a login
type LoginResultMsg struct {
	gen     uint64
	Session session.Session
	Err     error
}

// errNoLineData rejects a status result that carries no lines at all
var errNoLineData = errors.New("no line data available")

// Update applies a completion message produced by one of the command
// actions. It reports whether msg belonged to the container; stale
// results are recognized and dropped.
func (c *Container) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case StatusResultMsg:
		_ = c.finishStatus(msg)
	case ArrivalsResultMsg:
		_ = c.finishArrivals(msg)
	case LoginResultMsg:
		_ = c.finishLogin(msg)
	default:
		return false
	}
	return true
}

// begin moves a category to pending and returns its new generation
func (c *Container) begin(cat category, fn func(s *AppState)) uint64 {
	var gen uint64
	c.apply(func(s *AppState) bool {
		c.gens[cat]++
		gen = c.gens[cat]
		fn(s)
		return true
	})
	return gen
}

// FetchTransportDataCmd marks the status fetch pending and returns the
// command that performs it
func (c *Container) FetchTransportDataCmd(ctx context.Context, modes []string) tea.Cmd {
	gen := c.begin(catStatus, func(s *AppState) {
		s.Transport.Loading = true
		s.Transport.Error = ""
	})

	return func() tea.Msg {
		return StatusResultMsg{gen: gen, Result: c.remote.FetchLineStatusResult(ctx, modes)}
	}
}

// FetchTransportData fetches line status and waits for it to be applied
func (c *Container) FetchTransportData(ctx context.Context, modes []string) (TransportState, error) {
	msg, _ := c.FetchTransportDataCmd(ctx, modes)().(StatusResultMsg)
	err := c.finishStatus(msg)
	return c.Snapshot().Transport, err
}

func (c *Container) finishStatus(msg StatusResultMsg) error {
	var err error
	_, applied := c.apply(func(s *AppState) bool {
		if msg.gen != c.gens[catStatus] {
			return false
		}
		s.Transport.Loading = false

		if msg.Result.Lines == nil {
			err = msg.Result.Err
			if err == nil {
				err = errNoLineData
			}
			s.Transport.Error = err.Error()
			return true
		}

		s.Transport.Items = models.CloneLines(msg.Result.Lines)
		s.Transport.Source = msg.Result.Source.String()
		s.Transport.Error = ""
		return true
	})

	if !applied {
		c.logger.Debug("dropping stale status result", "generation", msg.gen)
		return ErrSuperseded
	}
	return err
}

// FetchArrivalsCmd marks the arrivals fetch pending and returns the command
// that performs it
func (c *Container) FetchArrivalsCmd(ctx context.Context, lineID string) tea.Cmd {
	lineID = strings.TrimSpace(lineID)
	gen := c.begin(catArrivals, func(s *AppState) {
		s.Transport.ArrivalsLoading = true
		s.Transport.ArrivalsError = ""
	})

	return func() tea.Msg {
		arrivals := c.remote.FetchArrivals(ctx, lineID)
		return ArrivalsResultMsg{gen: gen, LineID: lineID, Arrivals: arrivals, Err: ctx.Err()}
	}
}

// FetchArrivals fetches arrivals for a line and waits for them to be applied
func (c *Container) FetchArrivals(ctx context.Context, lineID string) ([]models.Arrival, error) {
	msg, _ := c.FetchArrivalsCmd(ctx, lineID)().(ArrivalsResultMsg)
	if err := c.finishArrivals(msg); err != nil {
		return nil, err
	}
	return c.Snapshot().Transport.Arrivals, nil
}

func (c *Container) finishArrivals(msg ArrivalsResultMsg) error {
	_, applied := c.apply(func(s *AppState) bool {
		if msg.gen != c.gens[catArrivals] {
			return false
		}
		s.Transport.ArrivalsLoading = false

		if msg.Err != nil {
			s.Transport.ArrivalsError = msg.Err.Error()
			return true
		}

		arrivals := append([]models.Arrival{}, msg.Arrivals...)
		models.SortArrivals(arrivals)
		s.Transport.Arrivals = arrivals
		s.Transport.ArrivalsLine = msg.LineID
		s.Transport.ArrivalsError = ""
		return true
	})

	if !applied {
		c.logger.Debug("dropping stale arrivals result", "line", msg.LineID, "generation", msg.gen)
		return ErrSuperseded
	}
	return msg.Err
}

// LoginCmd marks the login pending and returns the command that performs it
func (c *Container) LoginCmd(ctx context.Context, username, password string) tea.Cmd {
	gen := c.begin(catLogin, func(s *AppState) {
		s.Auth.Loading = true
		s.Auth.Error = ""
	})

	return func() tea.Msg {
		sess, err := c.sessions.Login(ctx, username, password)
		return LoginResultMsg{gen: gen, Session: sess, Err: err}
	}
}

// Login authenticates and waits for the result to be applied
func (c *Container) Login(ctx context.Context, username, password string) (AuthState, error) {
	msg, _ := c.LoginCmd(ctx, username, password)().(LoginResultMsg)
	err := c.finishLogin(msg)
	return c.Snapshot().Auth, err
}

// finishLogin persists the session only when the result is still current.
// A logout in between bumps the generation, so nothing it removed comes back.
func (c *Container) finishLogin(msg LoginResultMsg) error {
	c.sessionMu.Lock()
	defer c.sessionMu.Unlock()

	_, applied := c.apply(func(s *AppState) bool {
		if msg.gen != c.gens[catLogin] {
			return false
		}
		s.Auth.Loading = false

		if msg.Err != nil {
			s.Auth.Error = loginMessage(msg.Err)
			return true
		}

		s.Auth.Token = msg.Session.Token
		s.Auth.User = msg.Session.User.Clone()
		s.Auth.Error = ""
		return true
	})

	if !applied {
		c.logger.Debug("dropping stale login result", "generation", msg.gen)
		return ErrSuperseded
	}
	if msg.Err == nil {
		c.sessions.Persist(context.Background(), msg.Session)
	}
	return msg.Err
}

func loginMessage(err error) string {
	var le *session.LoginError
	if errors.As(err, &le) {
		return le.Message
	}
	return err.Error()
}
