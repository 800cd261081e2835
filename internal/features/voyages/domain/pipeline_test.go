package domain

import (
	"fmt"
	"testing"
	"time"

	underway "voyage-tracker/internal/features/underway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticTrack builds an hourly track that berths in Hobart, sails to
// Casey and returns home: three visits over two voyages.
func syntheticTrack() []underway.Observation {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	legs := []struct {
		lat, lon float64
		hours    int
	}{
		{-42.88, 147.33, 4}, // Hobart
		{-50.0, 130.0, 3},   // transit
		{-66.28, 110.53, 5}, // Casey
		{-50.0, 130.0, 3},   // transit
		{-42.88, 147.33, 4}, // Hobart again
	}

	var observations []underway.Observation
	n := 0
	for _, leg := range legs {
		for i := 0; i < leg.hours; i++ {
			observations = append(observations, underway.Observation{
				GMLID: fmt.Sprintf("nuyina_underway.%d", n),
				Time:  base.Add(time.Duration(n) * time.Hour),
				Lat:   leg.lat,
				Lon:   leg.lon,
			})
			n++
		}
	}
	return observations
}

// TestDetect verifies the full pipeline from raw fixes to a draft log.
func TestDetect(t *testing.T) {
	generated := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	log, err := Detect(DefaultCatalog(), syntheticTrack(), Options{GeneratedAt: generated})
	require.NoError(t, err)

	assert.Equal(t, "2023-06-01T00:00:00Z", log.Generated)
	require.Len(t, log.Voyages, 2)

	first := log.Voyages[0]
	assert.Equal(t, "V1 2023-01", first.ID)
	require.Len(t, first.Stops, 2)
	assert.Equal(t, "Hobart", first.Stops[0].Port)
	assert.Equal(t, "Casey", first.Stops[1].Port)
	assert.Equal(t, 3.0, first.Stops[0].DwellHours)
	assert.Equal(t, 4.0, first.Stops[1].DwellHours)

	second := log.Voyages[1]
	require.Len(t, second.Stops, 1)
	assert.Equal(t, "Hobart", second.Stops[0].Port)
}

// TestDetect_UnsortedInput verifies out of order fixes yield the same
// draft as the sorted track, without mutating the caller's slice.
func TestDetect_UnsortedInput(t *testing.T) {
	generated := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	sorted := syntheticTrack()

	shuffled := make([]underway.Observation, len(sorted))
	for i, o := range sorted {
		shuffled[(i*7)%len(sorted)] = o
	}
	backup := make([]underway.Observation, len(shuffled))
	copy(backup, shuffled)

	wantLog, err := Detect(DefaultCatalog(), sorted, Options{GeneratedAt: generated})
	require.NoError(t, err)
	gotLog, err := Detect(DefaultCatalog(), shuffled, Options{GeneratedAt: generated})
	require.NoError(t, err)

	assert.Equal(t, wantLog, gotLog)
	assert.Equal(t, backup, shuffled)
}

// TestDetect_Deterministic verifies repeated runs over the same fixes
// produce identical drafts.
func TestDetect_Deterministic(t *testing.T) {
	opts := Options{GeneratedAt: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)}
	track := syntheticTrack()

	first, err := Detect(DefaultCatalog(), track, opts)
	require.NoError(t, err)
	second, err := Detect(DefaultCatalog(), track, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestDetect_EmptyInput verifies an empty track yields a valid draft with
// the full catalog and no voyages.
func TestDetect_EmptyInput(t *testing.T) {
	log, err := Detect(DefaultCatalog(), nil, Options{})
	require.NoError(t, err)

	assert.Len(t, log.Ports, DefaultCatalog().Len())
	assert.NotNil(t, log.Voyages)
	assert.Empty(t, log.Voyages)
}

// TestDetect_InvalidCoordinates verifies a corrupt fix aborts the run and
// names the offending record.
func TestDetect_InvalidCoordinates(t *testing.T) {
	track := syntheticTrack()
	track[3].Lat = 120.0

	_, err := Detect(DefaultCatalog(), track, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, underway.ErrInvalidCoordinates)
	assert.Contains(t, err.Error(), track[3].GMLID)
}

// TestDetect_UnknownHomePort verifies an unrecognized home port fails
// fast.
func TestDetect_UnknownHomePort(t *testing.T) {
	_, err := Detect(DefaultCatalog(), syntheticTrack(), Options{HomePort: "Atlantis"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownHomePort)
	assert.Contains(t, err.Error(), "Atlantis")
}

// TestDetect_DwellThreshold verifies the dwell option governs which runs
// survive.
func TestDetect_DwellThreshold(t *testing.T) {
	generated := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	track := syntheticTrack()

	// Raising the threshold above the Hobart stays leaves only Casey.
	log, err := Detect(DefaultCatalog(), track, Options{
		MinDwellHours: 3.5,
		GeneratedAt:   generated,
	})
	require.NoError(t, err)
	require.Len(t, log.Voyages, 1)
	require.Len(t, log.Voyages[0].Stops, 1)
	assert.Equal(t, "Casey", log.Voyages[0].Stops[0].Port)
}
