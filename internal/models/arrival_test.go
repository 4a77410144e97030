package models

import "testing"

func TestSortArrivals(t *testing.T) {
	arrivals := []Arrival{
		{ID: "3", TimeToStation: 600},
		{ID: "1", TimeToStation: 120},
		{ID: "2", TimeToStation: 350},
		{ID: "4", TimeToStation: 120},
	}

	SortArrivals(arrivals)

	wantIDs := []string{"1", "4", "2", "3"}
	for i, id := range wantIDs {
		if arrivals[i].ID != id {
			t.Errorf("arrivals[%d].ID = %q, want %q", i, arrivals[i].ID, id)
		}
	}
	if !ArrivalsSorted(arrivals) {
		t.Error("ArrivalsSorted() = false after SortArrivals")
	}
}

func TestArrivalsSorted_Empty(t *testing.T) {
	if !ArrivalsSorted(nil) {
		t.Error("empty sequence should count as sorted")
	}
}
