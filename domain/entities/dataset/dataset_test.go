package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripfeat/domain/entities/dataset"
	"tripfeat/domain/entities/ride"
)

func TestFilterPreservesOrderAndInput(t *testing.T) {
	d := dataset.New(dataset.Train, []ride.RideRecord{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
	})

	kept := d.Filter(func(r ride.EnrichedRide) bool { return r.ID != "b" })

	assert.Equal(t, 3, kept.Len())
	assert.Equal(t, "a", kept.Rows[0].ID)
	assert.Equal(t, "c", kept.Rows[1].ID)
	assert.Equal(t, "d", kept.Rows[2].ID)
	assert.Equal(t, 4, d.Len(), "filtering derives a new dataset")
}

func TestCopyRowsIsIndependent(t *testing.T) {
	d := dataset.New(dataset.Test, []ride.RideRecord{{ID: "a"}})

	rows := d.CopyRows()
	rows[0].DistanceKm = 12.5

	assert.Zero(t, d.Rows[0].DistanceKm)
}

func TestPartitionHasDuration(t *testing.T) {
	assert.True(t, dataset.Train.HasDuration())
	assert.False(t, dataset.Test.HasDuration())
}
