package api

import "github.com/mobil-koeln/gomate/internal/models"

// FallbackLineStatuses returns the substitute snapshot served when the
// status endpoint cannot be reached. Every call returns a fresh copy with
// identical content.
func FallbackLineStatuses() []models.LineStatus {
	good := func() []models.StatusEntry {
		return []models.StatusEntry{{StatusSeverityDescription: "Good Service"}}
	}

	return []models.LineStatus{
		{ID: "central", Name: "Central", ModeName: models.ModeTube, LineStatuses: good()},
		{
			ID:       "bakerloo",
			Name:     "Bakerloo",
			ModeName: models.ModeTube,
			LineStatuses: []models.StatusEntry{{
				StatusSeverityDescription: "Minor Delays",
				Reason:                    "Minor delays between Elephant & Castle and Queen's Park due to signal failure.",
			}},
		},
		{ID: "victoria", Name: "Victoria", ModeName: models.ModeTube, LineStatuses: good()},
		{ID: "jubilee", Name: "Jubilee", ModeName: models.ModeTube, LineStatuses: good()},
		{ID: "73", Name: "73", ModeName: models.ModeBus, LineStatuses: good()},
		{ID: "390", Name: "390", ModeName: models.ModeBus, LineStatuses: good()},
		{ID: "elizabeth", Name: "Elizabeth Line", ModeName: models.ModeTrain, LineStatuses: good()},
	}
}
