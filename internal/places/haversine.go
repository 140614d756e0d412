package places

import "math"

// earthRadiusMiles is the sphere radius used for distance normalization.
const earthRadiusMiles = 3959.0

// Haversine returns the great-circle distance in miles between two
// coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	latDelta := toRadians(lat2 - lat1)
	lngDelta := toRadians(lng2 - lng1)
	a := math.Sin(latDelta/2)*math.Sin(latDelta/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(lngDelta/2)*math.Sin(lngDelta/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
