package filters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripfeat/domain/entities/dataset"
	"tripfeat/domain/entities/ride"
	"tripfeat/filters"
)

func trainWithDurations(durations ...int64) dataset.Dataset {
	rows := make([]ride.EnrichedRide, len(durations))
	for i, duration := range durations {
		rows[i] = ride.EnrichedRide{RideRecord: ride.RideRecord{TripDuration: duration}}
	}
	return dataset.Dataset{Partition: dataset.Train, Rows: rows}
}

func TestDurationPercentileCutsAboveThreshold(t *testing.T) {
	// 100 rows with durations 1..99 plus one absurd outlier.
	durations := make([]int64, 0, 100)
	for i := int64(1); i <= 99; i++ {
		durations = append(durations, i)
	}
	durations = append(durations, 1_000_000)

	filtered, threshold, err := filters.DurationPercentile(trainWithDurations(durations...), 0.99)
	require.NoError(t, err)

	assert.Less(t, filtered.Len(), 100, "row count strictly decreases")
	for _, row := range filtered.Rows {
		assert.LessOrEqual(t, float64(row.TripDuration), threshold)
	}
	assert.NotContains(t, collectDurations(filtered), int64(1_000_000))
}

func TestDurationPercentilePreservesOrder(t *testing.T) {
	filtered, threshold, err := filters.DurationPercentile(trainWithDurations(5, 9000, 3, 8, 1), 0.8)
	require.NoError(t, err)

	// The threshold lands between the bulk and the outlier, so only 9000 is
	// cut; kept rows stay in input order, not sorted order.
	assert.GreaterOrEqual(t, threshold, 8.0)
	assert.Less(t, threshold, 9000.0)
	assert.Equal(t, []int64{5, 3, 8, 1}, collectDurations(filtered))
}

func TestDurationPercentileEmptyDataset(t *testing.T) {
	_, _, err := filters.DurationPercentile(trainWithDurations(), 0.99)
	require.Error(t, err)
	assert.ErrorIs(t, err, filters.ErrEmptyDataset)
}

func TestDurationPercentileRejectsBadQuantile(t *testing.T) {
	for _, quantile := range []float64{0, -0.5, 1.5} {
		_, _, err := filters.DurationPercentile(trainWithDurations(1, 2, 3), quantile)
		assert.Error(t, err, "quantile %v", quantile)
	}
}

func TestSpeedBoundariesAreInclusive(t *testing.T) {
	bounds := filters.SpeedBounds{Min: 1, Max: 100}

	tests := []struct {
		name       string
		distanceKm float64
		duration   int64
		kept       bool
	}{
		// speed = distance * 3600 / duration
		{"exactly 100 km/h kept", 100, 3600, true},
		{"exactly 1 km/h kept", 1, 3600, true},
		{"just above 100 dropped", 100.001, 3600, false},
		{"just below 1 dropped", 0.999, 3600, false},
		{"typical city trip kept", 7.894, 900, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dataset.Dataset{Partition: dataset.Train, Rows: []ride.EnrichedRide{{
				RideRecord: ride.RideRecord{TripDuration: tt.duration},
				DistanceKm: tt.distanceKm,
			}}}
			filtered, _ := filters.Speed(d, bounds)
			assert.Equal(t, tt.kept, filtered.Len() == 1)
		})
	}
}

func TestSpeedZeroDurationIsDropped(t *testing.T) {
	d := dataset.Dataset{Partition: dataset.Train, Rows: []ride.EnrichedRide{
		{RideRecord: ride.RideRecord{TripDuration: 0}, DistanceKm: 5},
		{RideRecord: ride.RideRecord{TripDuration: 900}, DistanceKm: 5},
	}}

	filtered, drops := filters.Speed(d, filters.SpeedBounds{Min: 1, Max: 100})

	require.Equal(t, 1, filtered.Len())
	assert.Equal(t, 1, drops.Undefined)
	assert.Equal(t, 1, drops.Total())
}

func TestSpeedCountsDropsByReason(t *testing.T) {
	d := dataset.Dataset{Partition: dataset.Train, Rows: []ride.EnrichedRide{
		{RideRecord: ride.RideRecord{TripDuration: 60}, DistanceKm: 50},   // 3000 km/h
		{RideRecord: ride.RideRecord{TripDuration: 3600}, DistanceKm: 0.1}, // 0.1 km/h
		{RideRecord: ride.RideRecord{TripDuration: 0}, DistanceKm: 1},
		{RideRecord: ride.RideRecord{TripDuration: 900}, DistanceKm: 5},   // 20 km/h
	}}

	filtered, drops := filters.Speed(d, filters.SpeedBounds{Min: 1, Max: 100})

	assert.Equal(t, 1, filtered.Len())
	assert.Equal(t, filters.SpeedDrops{TooFast: 1, TooSlow: 1, Undefined: 1}, drops)
}

func collectDurations(d dataset.Dataset) []int64 {
	out := make([]int64, 0, d.Len())
	for _, row := range d.Rows {
		out = append(out, row.TripDuration)
	}
	return out
}
