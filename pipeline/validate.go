package pipeline

import (
	"fmt"

	"tripfeat/domain/entities/ride"
	"tripfeat/geo"
)

// classify checks one raw record and returns the data-quality condition it
// violates, nil when the record is usable. Timestamps are expected to be
// parsed upstream; a zero instant means the ingestion component had nothing.
func classify(record ride.RideRecord, hasDuration bool) error {
	if record.PickupTime.IsZero() {
		return fmt.Errorf("%w: missing pickup time", ErrMalformedRecord)
	}
	if record.PassengerCount < 0 {
		return fmt.Errorf("%w: negative passenger count %d", ErrMalformedRecord, record.PassengerCount)
	}
	if hasDuration {
		if record.DropoffTime.IsZero() {
			return fmt.Errorf("%w: missing dropoff time", ErrMalformedRecord)
		}
		if record.TripDuration < 0 {
			return fmt.Errorf("%w: negative trip duration %d", ErrMalformedRecord, record.TripDuration)
		}
	}
	if !geo.ValidCoordinate(record.PickupLatitude, record.PickupLongitude) {
		return fmt.Errorf("%w: pickup (%v, %v)", ErrInvalidGeometry, record.PickupLatitude, record.PickupLongitude)
	}
	if !geo.ValidCoordinate(record.DropoffLatitude, record.DropoffLongitude) {
		return fmt.Errorf("%w: dropoff (%v, %v)", ErrInvalidGeometry, record.DropoffLatitude, record.DropoffLongitude)
	}
	return nil
}
