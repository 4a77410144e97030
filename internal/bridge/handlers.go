package bridge

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mobil-koeln/gomate/internal/config"
	"github.com/mobil-koeln/gomate/internal/models"
	"github.com/mobil-koeln/gomate/internal/state"
)

const maxBodyBytes = 64 << 10

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type arrivalsResponse struct {
	LineID   string           `json:"lineId"`
	Arrivals []models.Arrival `json:"arrivals"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("request body is empty")
	}
	return json.Unmarshal(body, v)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).String(),
	})
}

func (s *Server) getState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.container.Snapshot())
}

// fetchTransport handles POST /transport/fetch?modes=tube,bus
func (s *Server) fetchTransport(w http.ResponseWriter, r *http.Request) {
	modes := s.modes
	if q := r.URL.Query().Get("modes"); q != "" {
		modes = config.SplitList(q)
	}

	transport, err := s.container.FetchTransportData(r.Context(), modes)
	switch {
	case errors.Is(err, state.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeJSON(w, http.StatusOK, transport)
	}
}

func (s *Server) getArrivals(w http.ResponseWriter, r *http.Request) {
	lineID := strings.TrimSpace(chi.URLParam(r, "lineID"))
	if lineID == "" {
		writeError(w, http.StatusBadRequest, "line id is required")
		return
	}

	arrivals, err := s.container.FetchArrivals(r.Context(), lineID)
	switch {
	case errors.Is(err, state.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeJSON(w, http.StatusOK, arrivalsResponse{LineID: lineID, Arrivals: arrivals})
	}
}

func (s *Server) clearArrivals(w http.ResponseWriter, _ *http.Request) {
	s.container.ClearArrivals()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login request: "+err.Error())
		return
	}

	auth, err := s.container.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, state.ErrSuperseded):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		msg := auth.Error
		if msg == "" {
			msg = err.Error()
		}
		writeError(w, http.StatusUnauthorized, msg)
	default:
		writeJSON(w, http.StatusOK, auth)
	}
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.container.Logout(r.Context())
	writeJSON(w, http.StatusOK, s.container.Snapshot().Auth)
}

// toggleFavorite accepts a full line or just {"id": ...}. A bare ID is
// resolved against the loaded lines.
func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var line models.LineStatus
	if err := decodeBody(r, &line); err != nil {
		writeError(w, http.StatusBadRequest, "invalid line: "+err.Error())
		return
	}
	if strings.TrimSpace(line.ID) == "" {
		writeError(w, http.StatusBadRequest, "line id is required")
		return
	}

	if line.Name == "" {
		snap := s.container.Snapshot()
		found, ok := models.FindLine(snap.Transport.Items, line.ID)
		if !ok {
			found, ok = models.FindLine(snap.Transport.Favorites, line.ID)
		}
		if !ok {
			writeError(w, http.StatusNotFound, "unknown line: "+line.ID)
			return
		}
		line = found
	}

	favorites := s.container.ToggleFavorite(line)
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}

func (s *Server) setSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid search request: "+err.Error())
		return
	}
	s.container.SetSearchQuery(req.Query)
	writeJSON(w, http.StatusOK, map[string]string{"searchQuery": req.Query})
}

func (s *Server) toggleTheme(w http.ResponseWriter, _ *http.Request) {
	dark := s.container.ToggleTheme()
	writeJSON(w, http.StatusOK, map[string]bool{"isDarkMode": dark})
}
