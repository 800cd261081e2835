package domain

import (
	"math"
	"time"

	underway "voyage-tracker/internal/features/underway/domain"
)

// Visit is a maximal run of consecutive observations tagged with the same
// port: one continuous stay inside that port's radius.
type Visit struct {
	// Port is the visited port's name.
	Port string
	// Arrive is the timestamp of the first observation in the run.
	Arrive time.Time
	// Depart is the timestamp of the last observation in the run.
	Depart time.Time
	// ArriveGMLID is the feed identifier of the arrival observation.
	ArriveGMLID string
	// DepartGMLID is the feed identifier of the departure observation.
	DepartGMLID string
	// DwellHours is Depart minus Arrive in hours, rounded to one decimal.
	DwellHours float64
	// PointCount is the number of observations in the run.
	PointCount int
}

// SegmentVisits folds a tagged observation sequence into visits in one
// forward pass. A run starts whenever the tag changes to a port and ends
// when it changes again or the input ends; at-sea observations never form
// runs. Runs shorter than minDwellHours (compared before rounding) are
// dropped after segmentation, never merged into neighbors, so two stays
// at the same port separated by any gap stay distinct. The observations
// must be time-sorted and positionally aligned with tags.
func SegmentVisits(observations []underway.Observation, tags []string, minDwellHours float64) []Visit {
	var visits []Visit

	flush := func(start, end int, port string) {
		arrive := observations[start]
		depart := observations[end]
		dwell := depart.Time.Sub(arrive.Time).Hours()
		if dwell < minDwellHours {
			return
		}
		visits = append(visits, Visit{
			Port:        port,
			Arrive:      arrive.Time,
			Depart:      depart.Time,
			ArriveGMLID: arrive.GMLID,
			DepartGMLID: depart.GMLID,
			DwellHours:  math.Round(dwell*10) / 10,
			PointCount:  end - start + 1,
		})
	}

	runPort := AtSea
	runStart := 0

	for i, tag := range tags {
		if tag == runPort {
			continue
		}
		if runPort != AtSea {
			flush(runStart, i-1, runPort)
		}
		runPort = tag
		runStart = i
	}
	if runPort != AtSea {
		flush(runStart, len(tags)-1, runPort)
	}

	return visits
}
