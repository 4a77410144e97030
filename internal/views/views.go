// Package views derives display values from application state. Every
// function is pure and safe to call from any goroutine.
package views

import (
	"fmt"
	"strings"

	"github.com/mobil-koeln/gomate/internal/models"
)

// FilterByQuery returns the lines whose name contains query, ignoring case.
// A blank query returns every line. The input is never modified.
func FilterByQuery(items []models.LineStatus, query string) []models.LineStatus {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.LineStatus(nil), items...)
	}

	out := make([]models.LineStatus, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}

// FormatArrivalTime renders seconds until arrival as "Due" or "<n> min"
func FormatArrivalTime(seconds int) string {
	if seconds < 60 {
		return "Due"
	}
	return fmt.Sprintf("%d min", seconds/60)
}

// SortedArrivals returns a copy of arrivals ordered soonest first
func SortedArrivals(arrivals []models.Arrival) []models.Arrival {
	out := append([]models.Arrival(nil), arrivals...)
	models.SortArrivals(out)
	return out
}

// IsFavorite reports whether a line with the given ID is in favorites
func IsFavorite(favorites []models.LineStatus, id string) bool {
	for _, f := range favorites {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Greeting returns the home screen greeting for a user
func Greeting(user *models.UserProfile) string {
	return fmt.Sprintf("Hello, %s!", user.DisplayName())
}

// FormatValidFrom returns the start date of the first validity period
func FormatValidFrom(entry models.StatusEntry) string {
	if len(entry.ValidityPeriods) == 0 || entry.ValidityPeriods[0].FromDate.IsZero() {
		return ""
	}
	return entry.ValidityPeriods[0].FromDate.Format("2006-01-02")
}
