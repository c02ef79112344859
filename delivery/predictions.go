package delivery

import (
	"fmt"

	"tripfeat/transforms"
)

// Prediction pairs a ride ID with a predicted trip duration in seconds: one
// row of the downstream result table.
type Prediction struct {
	ID           string  `json:"id"`
	TripDuration float64 `json:"trip_duration"`
}

// PredictionsFrom converts the collaborator's raw log-space predictions back
// to seconds. The inverse transform happens here, exactly once; callers must
// pass predictions straight from the model.
func PredictionsFrom(ids []string, logPredictions []float64) ([]Prediction, error) {
	if len(ids) != len(logPredictions) {
		return nil, fmt.Errorf("got %d ids for %d predictions", len(ids), len(logPredictions))
	}

	predictions := make([]Prediction, len(ids))
	for i := range ids {
		predictions[i] = Prediction{
			ID:           ids[i],
			TripDuration: transforms.DurationSeconds(logPredictions[i]),
		}
	}
	return predictions, nil
}
