package domain

import (
	"fmt"
	"time"
)

// Voyage is a sequence of consecutive visits forming one round trip.
type Voyage struct {
	// ID is "V<n> <YYYY-MM>" where n is the 1-based voyage ordinal and the
	// month comes from the first visit's arrival.
	ID string
	// Start is the first visit's arrival.
	Start time.Time
	// End is the last visit's departure.
	End time.Time
	// Visits are the voyage's port calls in arrival order.
	Visits []Visit
}

// GroupVoyages partitions visits into voyages. A visit opens a new voyage
// when it is the first visit, or when it is at the home port and the
// previous visit was not: returning home closes the trip. Departures from
// home never split, and consecutive home visits stay in one voyage.
func GroupVoyages(visits []Visit, homePort string) []Voyage {
	if len(visits) == 0 {
		return nil
	}

	var voyages []Voyage
	var current []Visit

	for i, v := range visits {
		if i > 0 && v.Port == homePort && visits[i-1].Port != homePort {
			voyages = append(voyages, newVoyage(len(voyages)+1, current))
			current = nil
		}
		current = append(current, v)
	}
	voyages = append(voyages, newVoyage(len(voyages)+1, current))

	return voyages
}

func newVoyage(n int, visits []Visit) Voyage {
	first := visits[0]
	last := visits[len(visits)-1]
	return Voyage{
		ID:     fmt.Sprintf("V%d %s", n, first.Arrive.Format("2006-01")),
		Start:  first.Arrive,
		End:    last.Depart,
		Visits: visits,
	}
}
