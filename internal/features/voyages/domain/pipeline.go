package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	underway "voyage-tracker/internal/features/underway/domain"
)

const (
	// DefaultMinDwellHours filters out brief radius crossings; a transit
	// past a port is not a visit.
	DefaultMinDwellHours = 2.0
	// DefaultHomePort is where voyages conventionally begin and end.
	DefaultHomePort = "Hobart"
)

// ErrUnknownHomePort is returned when the configured home port is not in
// the catalog.
var ErrUnknownHomePort = errors.New("home port not in catalog")

// Options tunes a detection run. Zero values take the defaults above; a
// zero GeneratedAt stamps the current time. To keep every run regardless
// of dwell, pass a negative MinDwellHours.
type Options struct {
	MinDwellHours float64
	HomePort      string
	GeneratedAt   time.Time
}

// Detect runs the full pipeline: tag every observation with a port or
// at-sea, segment tagged runs into visits, group visits into voyages and
// assemble the draft document. The function is pure given its inputs; the
// same observations and a fixed GeneratedAt produce an identical log.
//
// The input need not be sorted: a copy is stably sorted by time before
// tagging. Any observation with a non-finite or out-of-range coordinate
// rejects the whole input, naming the offending record. Empty input is
// valid and yields a log with the full port table and no voyages.
func Detect(catalog *Catalog, observations []underway.Observation, opts Options) (*VoyageLog, error) {
	if opts.MinDwellHours == 0 {
		opts.MinDwellHours = DefaultMinDwellHours
	}
	if opts.HomePort == "" {
		opts.HomePort = DefaultHomePort
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	if _, ok := catalog.Lookup(opts.HomePort); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHomePort, opts.HomePort)
	}

	for _, o := range observations {
		if !finite(o.Lat) || o.Lat < -90 || o.Lat > 90 {
			return nil, fmt.Errorf("%w: gml_id %s latitude %v", underway.ErrInvalidCoordinates, o.GMLID, o.Lat)
		}
		if !finite(o.Lon) || o.Lon < -180 || o.Lon > 180 {
			return nil, fmt.Errorf("%w: gml_id %s longitude %v", underway.ErrInvalidCoordinates, o.GMLID, o.Lon)
		}
	}

	sorted := make([]underway.Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	tags := TagAll(catalog, sorted)
	visits := SegmentVisits(sorted, tags, opts.MinDwellHours)
	voyages := GroupVoyages(visits, opts.HomePort)

	return BuildLog(catalog, voyages, opts.GeneratedAt), nil
}
