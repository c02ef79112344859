package dataset

import "tripfeat/domain/entities/ride"

// Partition identifies which split a dataset belongs to.
type Partition string

const (
	Train Partition = "train"
	Test  Partition = "test"
)

// HasDuration reports whether rows of this partition carry ground-truth trip
// durations. Duration-dependent stages only run when this is true.
func (p Partition) HasDuration() bool {
	return p == Train
}

// Dataset is one partition's rows at some point in the pipeline. Datasets
// are values: stages never mutate one in place, they derive a new one, so
// intermediate results can be shared across goroutines without locking.
type Dataset struct {
	Partition Partition
	Rows      []ride.EnrichedRide
}

func New(partition Partition, records []ride.RideRecord) Dataset {
	rows := make([]ride.EnrichedRide, len(records))
	for i := range records {
		rows[i] = ride.EnrichedRide{RideRecord: records[i]}
	}
	return Dataset{Partition: partition, Rows: rows}
}

func (d Dataset) Len() int {
	return len(d.Rows)
}

// Filter returns a new dataset holding only the rows the predicate keeps,
// preserving their relative order.
func (d Dataset) Filter(keep func(ride.EnrichedRide) bool) Dataset {
	kept := make([]ride.EnrichedRide, 0, len(d.Rows))
	for i := range d.Rows {
		if keep(d.Rows[i]) {
			kept = append(kept, d.Rows[i])
		}
	}
	return Dataset{Partition: d.Partition, Rows: kept}
}

// CopyRows returns a fresh row slice so a stage can fill derived fields
// without touching its input dataset.
func (d Dataset) CopyRows() []ride.EnrichedRide {
	rows := make([]ride.EnrichedRide, len(d.Rows))
	copy(rows, d.Rows)
	return rows
}
