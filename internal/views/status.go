package views

import (
	"strings"

	"github.com/mobil-koeln/gomate/internal/models"
)

// Bucket is a coarse severity classification of a status description
type Bucket int

const (
	BucketInfo Bucket = iota
	BucketSuccess
	BucketWarning
	BucketError
)

func (b Bucket) String() string {
	switch b {
	case BucketSuccess:
		return "success"
	case BucketWarning:
		return "warning"
	case BucketError:
		return "error"
	}
	return "info"
}

// StatusColor classifies a status description. Checks run in order, so
// "Good Service" is a success even though other keywords may follow.
func StatusColor(description string) Bucket {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "good"), strings.Contains(d, "service"):
		return BucketSuccess
	case strings.Contains(d, "minor"), strings.Contains(d, "delay"):
		return BucketWarning
	case strings.Contains(d, "severe"), strings.Contains(d, "suspended"):
		return BucketError
	}
	return BucketInfo
}

// StatusColorOf classifies the current status of a line
func StatusColorOf(line models.LineStatus) Bucket {
	return StatusColor(line.StatusDescription())
}

// CountByStatusBucket counts lines whose current status contains predicate.
// Lines without a status never match.
func CountByStatusBucket(items []models.LineStatus, predicate string) int {
	return CountByAny(items, predicate)
}

// CountByAny counts lines whose current status contains any predicate
func CountByAny(items []models.LineStatus, predicates ...string) int {
	n := 0
	for i := range items {
		if !items[i].HasStatus() {
			continue
		}
		desc := items[i].CurrentStatus().StatusSeverityDescription
		for _, p := range predicates {
			if strings.Contains(desc, p) {
				n++
				break
			}
		}
	}
	return n
}

// Summary holds the home screen counters
type Summary struct {
	Active  int `json:"active"`
	OnTime  int `json:"onTime"`
	Delayed int `json:"delayed"`
}

// Summarize computes the counters shown above the line list
func Summarize(items []models.LineStatus) Summary {
	return Summary{
		Active:  len(items),
		OnTime:  CountByStatusBucket(items, "Good"),
		Delayed: CountByAny(items, "Delay", "Minor"),
	}
}
