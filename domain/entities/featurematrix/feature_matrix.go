package featurematrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"tripfeat/domain/entities/dataset"
	"tripfeat/temporal"
)

// Columns lists the feature columns in their fixed output order. The
// modeling collaborator consumes exactly these, in this order.
var Columns = []string{
	"vendor_id",
	"passenger_count",
	"store_and_fwd_flag",
	"pickup_weekday",
	"log_distance",
	"is_weekday",
	"is_rush_hour",
	"is_holiday",
	"time_of_day",
	"pickup_location_frequency",
	"dropoff_location_frequency",
	"is_cancelled",
}

// Matrix struct that holds one partition's numeric projection
// + Partition: which split the rows came from
// + IDs: row identifiers aligned with the matrix rows, for the downstream result table
// + Features: one row per ride, one column per Columns entry; nil when the partition is empty
// + Target: log trip duration, only for partitions carrying ground truth
type Matrix struct {
	Partition dataset.Partition
	IDs       []string
	Features  *mat.Dense
	Target    []float64
}

// FromDataset projects a fully enriched dataset onto the fixed column set.
// Categorical encodings: weekday Monday=0..Sunday=6, time of day
// EarlyMorning=0..Night=3, booleans 0/1, store-and-forward flag Y=1.
func FromDataset(d dataset.Dataset) (Matrix, error) {
	m := Matrix{
		Partition: d.Partition,
		IDs:       make([]string, d.Len()),
	}
	if d.Partition.HasDuration() {
		m.Target = make([]float64, d.Len())
	}
	if d.Len() == 0 {
		return m, nil
	}

	m.Features = mat.NewDense(d.Len(), len(Columns), nil)
	for i := range d.Rows {
		row := &d.Rows[i]
		m.IDs[i] = row.ID

		weekday, err := weekdayIndex(row.PickupWeekday)
		if err != nil {
			return Matrix{}, fmt.Errorf("row %s: %w", row.ID, err)
		}
		bucket, err := timeOfDayIndex(row.TimeOfDay)
		if err != nil {
			return Matrix{}, fmt.Errorf("row %s: %w", row.ID, err)
		}

		m.Features.SetRow(i, []float64{
			float64(row.VendorID),
			float64(row.PassengerCount),
			flagToFloat(row.StoreAndForward == "Y"),
			weekday,
			row.LogDistance,
			flagToFloat(row.IsWeekday),
			flagToFloat(row.IsRushHour),
			flagToFloat(row.IsHoliday),
			bucket,
			float64(row.PickupLocationFreq),
			float64(row.DropoffLocationFreq),
			flagToFloat(row.IsCancelled),
		})
		if m.Target != nil {
			m.Target[i] = row.LogTripDuration
		}
	}
	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m Matrix) Rows() int {
	return len(m.IDs)
}

// Row copies one feature row out of the matrix.
func (m Matrix) Row(i int) []float64 {
	out := make([]float64, len(Columns))
	mat.Row(out, i, m.Features)
	return out
}

func weekdayIndex(name string) (float64, error) {
	// Monday-based, matching the ISO ordering the collaborator expects.
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, candidate := range order {
		if candidate == name {
			return float64(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

func timeOfDayIndex(bucket temporal.TimeOfDay) (float64, error) {
	switch bucket {
	case temporal.EarlyMorning:
		return 0, nil
	case temporal.Morning:
		return 1, nil
	case temporal.Afternoon:
		return 2, nil
	case temporal.Night:
		return 3, nil
	}
	return 0, fmt.Errorf("unknown time of day %q", bucket)
}

func flagToFloat(flag bool) float64 {
	if flag {
		return 1
	}
	return 0
}
