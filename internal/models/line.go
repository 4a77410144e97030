package models

import (
	"strings"
	"time"
)

// Transport modes understood by the status endpoint
const (
	ModeBus   = "bus"
	ModeTube  = "tube"
	ModeTrain = "train"
	ModeFerry = "ferry"
)

// DefaultModes is the mode list used when the caller does not pass one
var DefaultModes = []string{ModeTube, ModeBus, ModeTrain}

// UnknownStatus is reported for lines that carry no status entries
const UnknownStatus = "Unknown"

// LineStatus represents a transit line and its status entries
type LineStatus struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ModeName     string        `json:"modeName"`
	LineStatuses []StatusEntry `json:"lineStatuses"`
}

// StatusEntry is a single status report for a line
type StatusEntry struct {
	StatusSeverityDescription string           `json:"statusSeverityDescription"`
	Reason                    string           `json:"reason,omitempty"`
	ValidityPeriods           []ValidityPeriod `json:"validityPeriods,omitempty"`
}

// ValidityPeriod is the time window a status entry applies to
type ValidityPeriod struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`
}

// HasStatus reports whether the line carries at least one status entry
func (l *LineStatus) HasStatus() bool {
	return len(l.LineStatuses) > 0
}

// CurrentStatus returns the first status entry, which is the one in effect.
// Lines without entries report UnknownStatus.
func (l *LineStatus) CurrentStatus() StatusEntry {
	if !l.HasStatus() {
		return StatusEntry{StatusSeverityDescription: UnknownStatus}
	}
	return l.LineStatuses[0]
}

// StatusDescription returns the description of the current status
func (l *LineStatus) StatusDescription() string {
	desc := strings.TrimSpace(l.CurrentStatus().StatusSeverityDescription)
	if desc == "" {
		return UnknownStatus
	}
	return desc
}

// ModeLabel returns the mode name with its first letter upper-cased
func (l *LineStatus) ModeLabel() string {
	if l.ModeName == "" {
		return ""
	}
	return strings.ToUpper(l.ModeName[:1]) + l.ModeName[1:]
}

// Clone returns a deep copy of the line
func (l LineStatus) Clone() LineStatus {
	if l.LineStatuses == nil {
		return l
	}
	entries := make([]StatusEntry, len(l.LineStatuses))
	for i, e := range l.LineStatuses {
		if e.ValidityPeriods != nil {
			e.ValidityPeriods = append([]ValidityPeriod(nil), e.ValidityPeriods...)
		}
		entries[i] = e
	}
	l.LineStatuses = entries
	return l
}

// CloneLines deep-copies a slice of lines, preserving nil
func CloneLines(lines []LineStatus) []LineStatus {
	if lines == nil {
		return nil
	}
	out := make([]LineStatus, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}

// FindLine returns the line with the given ID (case-insensitive)
func FindLine(lines []LineStatus, id string) (LineStatus, bool) {
	for _, l := range lines {
		if strings.EqualFold(l.ID, id) {
			return l, true
		}
	}
	return LineStatus{}, false
}
