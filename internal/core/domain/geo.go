package domain

import "math"

// EarthRadiusKm is the spherical Earth radius used for all distance math.
const EarthRadiusKm = 6371.0

func degreesToRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceKm computes the great-circle distance between two points with the
// spherical law of cosines. The cosine argument is clamped to [-1, 1] so that
// identical points yield exactly 0 instead of acos of a value just above 1.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)
	dLng := degreesToRadians(lng2) - degreesToRadians(lng1)

	cosArg := math.Cos(rLat1)*math.Cos(rLat2)*math.Cos(dLng) + math.Sin(rLat1)*math.Sin(rLat2)
	cosArg = math.Min(1, math.Max(-1, cosArg))

	return EarthRadiusKm * math.Acos(cosArg)
}
