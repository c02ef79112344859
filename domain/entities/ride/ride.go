package ride

import (
	"time"

	"tripfeat/temporal"
)

// Coordinate is a longitude/latitude pair used as an aggregation key.
// Equality is exact float64 equality: two coordinates differing in the last
// bit count as distinct locations. This keeps frequency joins reproducible
// instead of rounding to a grid.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// RideRecord struct that contains the raw ride data as ingested
// + ID: opaque row identifier, never used as a feature
// + VendorID: categorical vendor code
// + PickupTime: trip start instant with its local timezone
// + DropoffTime: trip end instant; zero value for test rows
// + PassengerCount: number of passengers, non-negative
// + PickupLatitude / PickupLongitude: pickup point in degrees
// + DropoffLatitude / DropoffLongitude: dropoff point in degrees
// + StoreAndForward: "Y" when the trip record was held on the vehicle before sending
// + TripDuration: ground-truth duration in seconds; meaningful for train rows only
type RideRecord struct {
	ID               string
	VendorID         int
	PickupTime       time.Time
	DropoffTime      time.Time
	PassengerCount   int
	PickupLatitude   float64
	PickupLongitude  float64
	DropoffLatitude  float64
	DropoffLongitude float64
	StoreAndForward  string
	TripDuration     int64
}

func (r RideRecord) PickupCoordinate() Coordinate {
	return Coordinate{Longitude: r.PickupLongitude, Latitude: r.PickupLatitude}
}

func (r RideRecord) DropoffCoordinate() Coordinate {
	return Coordinate{Longitude: r.DropoffLongitude, Latitude: r.DropoffLatitude}
}

// EnrichedRide struct that carries a raw record plus the fields derived by
// the pipeline stages. Fields are filled in stage order; a stage never reads
// a field a later stage produces.
// + DistanceKm: great-circle trip distance
// + PickupWeekday, IsWeekday, IsRushHour, IsHoliday, TimeOfDay: temporal features
// + PickupLocationFreq / DropoffLocationFreq: population-wide coordinate counts
// + LogDistance: log1p of DistanceKm
// + LogTripDuration: log1p of TripDuration, train rows only
// + IsCancelled: true when LogDistance is exactly zero
type EnrichedRide struct {
	RideRecord

	DistanceKm          float64
	PickupWeekday       string
	IsWeekday           bool
	IsRushHour          bool
	IsHoliday           bool
	TimeOfDay           temporal.TimeOfDay
	PickupLocationFreq  int
	DropoffLocationFreq int
	LogDistance         float64
	LogTripDuration     float64
	IsCancelled         bool
}
