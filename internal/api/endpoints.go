package api

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the base URL for the Transport for London API
	BaseURL = "https://api.tfl.gov.uk"

	// AuthURL is the login endpoint of the auth service
	AuthURL = "https://dummyjson.com/auth/login"

	// EndpointLineStatus returns the status of every line for a mode list.
	// Path param: comma-separated modes, e.g. tube,bus,train
	EndpointLineStatus = "/Line/Mode/%s/Status"

	// EndpointArrivals returns arrival predictions at a stop point.
	// Not called yet: arrivals are simulated until a stop point is modelled.
	EndpointArrivals = "/StopPoint/%s/Arrivals"
)

// lineStatusPath builds the status path for a mode list
func lineStatusPath(modes []string) string {
	escaped := make([]string, 0, len(modes))
	for _, m := range modes {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		escaped = append(escaped, url.PathEscape(m))
	}
	return fmt.Sprintf(EndpointLineStatus, strings.Join(escaped, ","))
}
