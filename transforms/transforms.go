package transforms

import (
	"math"

	"tripfeat/domain/entities/dataset"
)

// Apply derives the skew-corrected fields and the cancellation flag. Raw
// distance and duration are heavy right-tailed; log1p stabilizes variance
// and keeps zero-distance trips mapped to exactly zero. The target column
// LogTripDuration is only derived for partitions carrying ground truth.
func Apply(d dataset.Dataset) dataset.Dataset {
	rows := d.CopyRows()
	hasDuration := d.Partition.HasDuration()
	for i := range rows {
		rows[i].LogDistance = math.Log1p(rows[i].DistanceKm)
		// log1p(0) is exactly 0, so exact equality identifies zero-distance
		// trips without a tolerance band.
		rows[i].IsCancelled = rows[i].LogDistance == 0
		if hasDuration {
			rows[i].LogTripDuration = math.Log1p(float64(rows[i].TripDuration))
		}
	}
	return dataset.Dataset{Partition: d.Partition, Rows: rows}
}

// DurationSeconds inverts the target transform, recovering seconds from a
// predicted log trip duration. This belongs to the boundary with the
// modeling collaborator and must be applied exactly once per prediction.
func DurationSeconds(prediction float64) float64 {
	return math.Exp(prediction) - 1
}
