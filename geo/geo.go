package geo

import "math"

// earthRadiusKm is the Earth radius used by the haversine formula. Downstream
// duration and speed thresholds were calibrated against this exact constant;
// changing it shifts every derived distance.
const earthRadiusKm = 6373.0

// ValidCoordinate reports whether a latitude/longitude pair is inside the
// valid degree ranges (|lat| <= 90, |lon| <= 180).
func ValidCoordinate(lat float64, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return math.Abs(lat) <= 90 && math.Abs(lon) <= 180
}

// DistanceKm returns the great-circle distance in kilometers between two
// points given in degrees, using the haversine formula. Identical points
// yield 0.
func DistanceKm(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	radLat1 := degreesToRadians(lat1)
	radLat2 := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	sinLat := math.Sin(deltaLat / 2)
	sinLon := math.Sin(deltaLon / 2)
	a := sinLat*sinLat + math.Cos(radLat1)*math.Cos(radLat2)*sinLon*sinLon

	// Floating-point error can push a slightly outside [0, 1], which would
	// feed a negative value to one of the square roots below.
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return c * earthRadiusKm
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
