package domain

import (
	"fmt"
	"testing"
	"time"

	underway "voyage-tracker/internal/features/underway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackPoint builds one observation n hours after the track start.
func trackPoint(n int) underway.Observation {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return underway.Observation{
		GMLID: fmt.Sprintf("nuyina_underway.%d", n),
		Time:  base.Add(time.Duration(n) * time.Hour),
		Lat:   -43.0,
		Lon:   147.0,
	}
}

// track builds hourly observations with one tag per point.
func track(tags ...string) ([]underway.Observation, []string) {
	observations := make([]underway.Observation, len(tags))
	for i := range tags {
		observations[i] = trackPoint(i)
	}
	return observations, tags
}

// TestSegmentVisits_SingleRun verifies one contiguous in-port run becomes
// one visit with the first and last fixes as bounds.
func TestSegmentVisits_SingleRun(t *testing.T) {
	observations, tags := track("Hobart", "Hobart", "Hobart", "Hobart")

	visits := SegmentVisits(observations, tags, 2)
	require.Len(t, visits, 1)

	v := visits[0]
	assert.Equal(t, "Hobart", v.Port)
	assert.Equal(t, observations[0].Time, v.Arrive)
	assert.Equal(t, observations[3].Time, v.Depart)
	assert.Equal(t, "nuyina_underway.0", v.ArriveGMLID)
	assert.Equal(t, "nuyina_underway.3", v.DepartGMLID)
	assert.Equal(t, 3.0, v.DwellHours)
	assert.Equal(t, 4, v.PointCount)
}

// TestSegmentVisits_ShortRunDropped verifies a run below the dwell
// threshold produces no visit.
func TestSegmentVisits_ShortRunDropped(t *testing.T) {
	observations, tags := track(AtSea, "Burnie", "Burnie", AtSea)

	visits := SegmentVisits(observations, tags, 2)
	assert.Empty(t, visits)
}

// TestSegmentVisits_GapSplitsRuns verifies two runs at the same port
// separated by open water stay separate visits.
func TestSegmentVisits_GapSplitsRuns(t *testing.T) {
	observations, tags := track(
		"Hobart", "Hobart", "Hobart",
		AtSea, AtSea,
		"Hobart", "Hobart", "Hobart",
	)

	visits := SegmentVisits(observations, tags, 2)
	require.Len(t, visits, 2)
	assert.Equal(t, observations[0].Time, visits[0].Arrive)
	assert.Equal(t, observations[2].Time, visits[0].Depart)
	assert.Equal(t, observations[5].Time, visits[1].Arrive)
	assert.Equal(t, observations[7].Time, visits[1].Depart)
}

// TestSegmentVisits_DroppedRunDoesNotMerge verifies that filtering a short
// middle run never joins its neighbors.
func TestSegmentVisits_DroppedRunDoesNotMerge(t *testing.T) {
	observations, tags := track(
		"Casey", "Casey", "Casey", "Casey",
		AtSea,
		"Casey", "Casey",
		AtSea,
		"Casey", "Casey", "Casey", "Casey",
	)

	visits := SegmentVisits(observations, tags, 2)
	require.Len(t, visits, 2)
	assert.Equal(t, 3.0, visits[0].DwellHours)
	assert.Equal(t, observations[8].Time, visits[1].Arrive)
	assert.Equal(t, observations[11].Time, visits[1].Depart)
}

// TestSegmentVisits_AdjacentPorts verifies a direct tag change with no
// at-sea gap still closes the first visit.
func TestSegmentVisits_AdjacentPorts(t *testing.T) {
	observations, tags := track(
		"Hobart", "Hobart", "Hobart",
		"Burnie", "Burnie", "Burnie",
	)

	visits := SegmentVisits(observations, tags, 2)
	require.Len(t, visits, 2)
	assert.Equal(t, "Hobart", visits[0].Port)
	assert.Equal(t, observations[2].Time, visits[0].Depart)
	assert.Equal(t, "Burnie", visits[1].Port)
	assert.Equal(t, observations[3].Time, visits[1].Arrive)
}

// TestSegmentVisits_DwellRounding verifies dwell is reported to one
// decimal place.
func TestSegmentVisits_DwellRounding(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	observations := []underway.Observation{
		{GMLID: "a", Time: base, Lat: -42.88, Lon: 147.33},
		{GMLID: "b", Time: base.Add(2*time.Hour + 35*time.Minute), Lat: -42.88, Lon: 147.33},
	}
	tags := []string{"Hobart", "Hobart"}

	visits := SegmentVisits(observations, tags, 2)
	require.Len(t, visits, 1)
	// 2h35m is 2.5833 hours.
	assert.Equal(t, 2.6, visits[0].DwellHours)
}

// TestSegmentVisits_FilterUsesExactDwell verifies the threshold compares
// the exact dwell, not the rounded value.
func TestSegmentVisits_FilterUsesExactDwell(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	observations := []underway.Observation{
		{GMLID: "a", Time: base, Lat: -42.88, Lon: 147.33},
		{GMLID: "b", Time: base.Add(time.Hour + 58*time.Minute), Lat: -42.88, Lon: 147.33},
	}
	tags := []string{"Hobart", "Hobart"}

	// 1h58m rounds to 2.0 but is under the two hour threshold.
	visits := SegmentVisits(observations, tags, 2)
	assert.Empty(t, visits)
}

// TestSegmentVisits_NegativeThresholdKeepsAll verifies a negative
// threshold disables the dwell filter.
func TestSegmentVisits_NegativeThresholdKeepsAll(t *testing.T) {
	observations, tags := track(AtSea, "Davis", AtSea)

	visits := SegmentVisits(observations, tags, -1)
	require.Len(t, visits, 1)
	assert.Equal(t, "Davis", visits[0].Port)
	assert.Equal(t, 0.0, visits[0].DwellHours)
	assert.Equal(t, 1, visits[0].PointCount)
}

// TestSegmentVisits_Empty verifies empty and all-at-sea tracks produce no
// visits.
func TestSegmentVisits_Empty(t *testing.T) {
	assert.Empty(t, SegmentVisits(nil, nil, 2))

	observations, tags := track(AtSea, AtSea, AtSea)
	assert.Empty(t, SegmentVisits(observations, tags, 2))
}
