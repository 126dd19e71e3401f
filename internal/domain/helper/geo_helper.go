package helper

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"Campos-App/internal/domain/model"
)

// DistanceMeters great-circle distance between two coordinates.
func DistanceMeters(a, b model.LatLng) float64 {
	return geo.Distance(orb.Point{a.Lng, a.Lat}, orb.Point{b.Lng, b.Lat})
}

// DistanceKm great-circle distance in kilometers.
func DistanceKm(a, b model.LatLng) float64 {
	return DistanceMeters(a, b) / 1000.0
}

// SortCamposByDistance sorts campos nearest-first from origin. The sort is
// stable so equidistant campos keep catalog order.
func SortCamposByDistance(origin model.LatLng, campos []model.Campo) {
	sort.SliceStable(campos, func(i, j int) bool {
		di := DistanceMeters(origin, campos[i].ToLatLng())
		dj := DistanceMeters(origin, campos[j].ToLatLng())
		return di < dj
	})
}

// FilterWithCoordinates keeps only campos that can be geofenced.
func FilterWithCoordinates(campos []model.Campo) []model.Campo {
	var out []model.Campo
	for _, c := range campos {
		if c.HasValidCoordinates() {
			out = append(out, c)
		}
	}
	return out
}
