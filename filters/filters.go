// Package filters removes statistically implausible rows from the train
// partition. Filters are predicates over immutable record sequences, never
// positional deletions, so running them in sequence cannot invalidate row
// indices. The test partition is never filtered: a prediction must exist for
// every requested test row.
package filters

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tripfeat/domain/entities/dataset"
	"tripfeat/domain/entities/ride"
)

// ErrEmptyDataset is returned when a percentile threshold is requested over
// zero rows. The pipeline cannot proceed past it.
var ErrEmptyDataset = errors.New("cannot compute percentile over an empty dataset")

// SpeedBounds holds the exclusive cut lines of the speed filter in km/h.
// Rows exactly at a bound are retained.
type SpeedBounds struct {
	Min float64
	Max float64
}

// SpeedDrops counts the rows removed by the speed filter, by reason.
// + TooFast: speed strictly above the upper bound
// + TooSlow: speed strictly below the lower bound
// + Undefined: zero-duration rows, whose speed cannot be computed
type SpeedDrops struct {
	TooFast   int
	TooSlow   int
	Undefined int
}

func (s SpeedDrops) Total() int {
	return s.TooFast + s.TooSlow + s.Undefined
}

// DurationPercentile computes the given quantile of trip duration over the
// current rows (linear interpolation between order statistics) and keeps
// rows at or below it. It returns the filtered dataset and the threshold
// actually applied. The quantile is data-driven rather than a fixed cut
// because duration distributions shift between datasets.
func DurationPercentile(d dataset.Dataset, quantile float64) (dataset.Dataset, float64, error) {
	if d.Len() == 0 {
		return dataset.Dataset{}, 0, fmt.Errorf("duration filter: %w", ErrEmptyDataset)
	}
	if quantile <= 0 || quantile > 1 {
		return dataset.Dataset{}, 0, fmt.Errorf("duration filter: quantile %v outside (0, 1]", quantile)
	}

	durations := make([]float64, d.Len())
	for i := range d.Rows {
		durations[i] = float64(d.Rows[i].TripDuration)
	}
	sort.Float64s(durations)
	threshold := stat.Quantile(quantile, stat.LinInterp, durations, nil)

	filtered := d.Filter(func(r ride.EnrichedRide) bool {
		return float64(r.TripDuration) <= threshold
	})
	return filtered, threshold, nil
}

// Speed drops rows whose derived speed (km/h) falls strictly outside the
// bounds. Speed is computed on the fly and discarded, never stored on the
// row. Zero-duration rows have no defined speed and are routed to the same
// drop branch as implausibly slow rows.
func Speed(d dataset.Dataset, bounds SpeedBounds) (dataset.Dataset, SpeedDrops) {
	var drops SpeedDrops
	filtered := d.Filter(func(r ride.EnrichedRide) bool {
		if r.TripDuration == 0 {
			drops.Undefined++
			return false
		}
		speed := r.DistanceKm * 3600 / float64(r.TripDuration)
		if speed > bounds.Max {
			drops.TooFast++
			return false
		}
		if speed < bounds.Min {
			drops.TooSlow++
			return false
		}
		return true
	})
	return filtered, drops
}
