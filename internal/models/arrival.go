package models

import "sort"

// Arrival is a predicted vehicle arrival for a line
type Arrival struct {
	ID              string `json:"id"`
	LineName        string `json:"lineName"`
	DestinationName string `json:"destinationName"`
	TimeToStation   int    `json:"timeToStation"` // seconds
	PlatformName    string `json:"platformName"`
}

// SortArrivals orders arrivals by time to station, soonest first
func SortArrivals(arrivals []Arrival) {
	sort.SliceStable(arrivals, func(i, j int) bool {
		return arrivals[i].TimeToStation < arrivals[j].TimeToStation
	})
}

// ArrivalsSorted reports whether arrivals are in ascending time order
func ArrivalsSorted(arrivals []Arrival) bool {
	return sort.SliceIsSorted(arrivals, func(i, j int) bool {
		return arrivals[i].TimeToStation < arrivals[j].TimeToStation
	})
}
