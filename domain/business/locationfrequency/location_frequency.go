package locationfrequency

import (
	"tripfeat/domain/entities/dataset"
	"tripfeat/domain/entities/ride"
)

// Tables holds per-location occurrence counts built from the combined
// train+test coordinate population, one table for pickups and one for
// dropoffs. Tables are shared read-only state: an inference-time run must
// join against the tables built at training time (or rebuild them from the
// same population), otherwise frequencies drift and train/serve parity
// breaks.
type Tables struct {
	pickups  map[ride.Coordinate]int
	dropoffs map[ride.Coordinate]int
}

// BuildTables counts coordinate occurrences across every row of the given
// partitions. Duplicates are summed, never deduplicated, so a coordinate's
// count is the number of rows that used it.
func BuildTables(partitions ...dataset.Dataset) Tables {
	tables := Tables{
		pickups:  make(map[ride.Coordinate]int),
		dropoffs: make(map[ride.Coordinate]int),
	}
	for _, partition := range partitions {
		for i := range partition.Rows {
			tables.pickups[partition.Rows[i].PickupCoordinate()]++
			tables.dropoffs[partition.Rows[i].DropoffCoordinate()]++
		}
	}
	return tables
}

// PickupCount returns the population count for a pickup coordinate, 0 when
// the coordinate never appeared.
func (t Tables) PickupCount(c ride.Coordinate) int {
	return t.pickups[c]
}

// DropoffCount returns the population count for a dropoff coordinate, 0 when
// the coordinate never appeared.
func (t Tables) DropoffCount(c ride.Coordinate) int {
	return t.dropoffs[c]
}

// Join attaches pickup and dropoff frequencies to every row of the dataset.
// Left-join semantics: no row is ever dropped, a coordinate absent from the
// tables yields 0. When the dataset contributed to the tables, every row's
// frequency is at least 1 because the row counts itself.
func (t Tables) Join(d dataset.Dataset) dataset.Dataset {
	rows := d.CopyRows()
	for i := range rows {
		rows[i].PickupLocationFreq = t.pickups[rows[i].PickupCoordinate()]
		rows[i].DropoffLocationFreq = t.dropoffs[rows[i].DropoffCoordinate()]
	}
	return dataset.Dataset{Partition: d.Partition, Rows: rows}
}
