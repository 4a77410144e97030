package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mobil-koeln/gomate/internal/models"
)

// Source tells where a status result came from
type Source int

const (
	// SourceLive means the remote endpoint answered
	SourceLive Source = iota
	// SourceFallback means the fixed substitute snapshot was served
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceLive:
		return "live"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

// StatusResult is the outcome of a status fetch. Err holds the failure that
// caused a fallback and is nil for live results.
type StatusResult struct {
	Lines  []models.LineStatus
	Source Source
	Err    error
}

// FetchLineStatus returns the status of every line for the given modes.
// It never fails: on any remote error the fallback snapshot is returned.
func (c *Client) FetchLineStatus(ctx context.Context, modes []string) []models.LineStatus {
	return c.FetchLineStatusResult(ctx, modes).Lines
}

// FetchLineStatusResult is FetchLineStatus with the branch that was taken
func (c *Client) FetchLineStatusResult(ctx context.Context, modes []string) StatusResult {
	modes = normalizeModes(modes)

	lines, err := c.fetchLiveLineStatus(ctx, modes)
	if err != nil {
		c.logger.Warn("line status request failed, serving fallback data",
			"modes", strings.Join(modes, ","),
			"error", err,
		)
		return StatusResult{
			Lines:  FallbackLineStatuses(),
			Source: SourceFallback,
			Err:    err,
		}
	}

	c.logger.Debug("fetched live line status", "modes", strings.Join(modes, ","), "lines", len(lines))
	return StatusResult{Lines: lines, Source: SourceLive}
}

func (c *Client) fetchLiveLineStatus(ctx context.Context, modes []string) ([]models.LineStatus, error) {
	reqURL := c.baseURL + lineStatusPath(modes)

	body, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	return decodeLineStatus(body)
}

func decodeLineStatus(body []byte) ([]models.LineStatus, error) {
	var lines []models.LineStatus
	if err := json.Unmarshal(body, &lines); err != nil {
		return nil, fmt.Errorf("%w: failed to parse line status response: %w", ErrMalformedResponse, err)
	}
	if lines == nil {
		return nil, fmt.Errorf("%w: line status response was null", ErrMalformedResponse)
	}
	return lines, nil
}

// normalizeModes drops blank entries and falls back to the default mode list
func normalizeModes(modes []string) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		for _, part := range strings.Split(m, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), models.DefaultModes...)
	}
	return out
}
