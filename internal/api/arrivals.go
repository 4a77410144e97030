package api

import (
	"context"
	"strings"
	"time"

	"github.com/mobil-koeln/gomate/internal/models"
)

// maxArrivalJitter bounds the random offset added to each template arrival
const maxArrivalJitter = 60

var arrivalTemplate = []models.Arrival{
	{ID: "1", LineName: "73", DestinationName: "Oxford Circus", TimeToStation: 120, PlatformName: "Stop A"},
	{ID: "2", LineName: "73", DestinationName: "Victoria", TimeToStation: 350, PlatformName: "Stop A"},
	{ID: "3", LineName: "390", DestinationName: "Archway", TimeToStation: 600, PlatformName: "Stop B"},
	{ID: "4", LineName: "73", DestinationName: "Oxford Circus", TimeToStation: 900, PlatformName: "Stop A"},
}

// FetchArrivals returns arrival predictions for a line, soonest first.
// The feed is simulated from a fixed template after an artificial delay.
// It never fails: internal errors and cancellation yield an empty slice.
func (c *Client) FetchArrivals(ctx context.Context, lineID string) (arrivals []models.Arrival) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("arrivals feed failed", "line", lineID, "error", r)
			arrivals = []models.Arrival{}
		}
	}()

	c.logger.Debug("fetching arrivals", "line", lineID)

	if err := c.waitArrivalDelay(ctx); err != nil {
		c.logger.Warn("arrivals request abandoned", "line", lineID, "error", err)
		return []models.Arrival{}
	}

	lineName := strings.ToUpper(strings.TrimSpace(lineID))
	arrivals = make([]models.Arrival, 0, len(arrivalTemplate))
	for _, a := range arrivalTemplate {
		a.LineName = lineName
		a.TimeToStation += c.randIntn(maxArrivalJitter)
		arrivals = append(arrivals, a)
	}

	models.SortArrivals(arrivals)
	return arrivals
}

func (c *Client) waitArrivalDelay(ctx context.Context) error {
	if c.arrivalDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(c.arrivalDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
