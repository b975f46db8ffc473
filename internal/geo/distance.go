// Package geo holds the stateless distance math used by the search engine.
package geo

import (
	"math"
	"vehicle-proximity-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/umahmood/haversine"
)

// EarthRadiusKm is the mean Earth radius assumed by HaversineKm.
// haversine.Distance hardcodes the same value; TestHaversineKm_KnownDistances pins it.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between a and b in kilometers.
func HaversineKm(a, b domain.Coordinates) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km
}

// PlanarDistanceSquared is the ranking proxy: the sum of squared coordinate
// differences in decimal degrees, with no projection correction.
// It orders candidates; it is not a distance.
func PlanarDistanceSquared(a, b domain.Coordinates) float64 {
	return planar.DistanceSquared(orb.Point{a.Lon, a.Lat}, orb.Point{b.Lon, b.Lat})
}

// Round2 rounds a distance to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
