package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrMissingID is returned when an observation has no feature identifier.
	ErrMissingID = errors.New("observation missing gml_id")
	// ErrMissingTime is returned when an observation has no timestamp.
	ErrMissingTime = errors.New("observation missing datetime")
	// ErrInvalidCoordinates is returned when latitude or longitude is not a
	// finite value inside the valid range.
	ErrInvalidCoordinates = errors.New("observation has invalid coordinates")
)

// Observation is a single underway telemetry record: where the ship was at
// one moment in time. Identity for deduplication purposes is the
// (Time, Lat, Lon) triple; GMLID is carried through for traceability.
type Observation struct {
	// GMLID is the upstream feature identifier for this record.
	GMLID string `json:"gml_id"`
	// Time is the observation timestamp in UTC.
	Time time.Time `json:"datetime"`
	// Lat is the latitude in decimal degrees.
	Lat float64 `json:"latitude"`
	// Lon is the longitude in decimal degrees.
	Lon float64 `json:"longitude"`
}

// Validate reports whether the observation is a usable telemetry record.
func (o Observation) Validate() error {
	if o.GMLID == "" {
		return ErrMissingID
	}
	if o.Time.IsZero() {
		return fmt.Errorf("%w: gml_id %s", ErrMissingTime, o.GMLID)
	}
	if !finite(o.Lat) || o.Lat < -90 || o.Lat > 90 {
		return fmt.Errorf("%w: gml_id %s latitude %v", ErrInvalidCoordinates, o.GMLID, o.Lat)
	}
	if !finite(o.Lon) || o.Lon < -180 || o.Lon > 180 {
		return fmt.Errorf("%w: gml_id %s longitude %v", ErrInvalidCoordinates, o.GMLID, o.Lon)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
