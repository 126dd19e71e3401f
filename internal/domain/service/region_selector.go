package service

import (
	"Campos-App/internal/domain/helper"
	"Campos-App/internal/domain/model"
)

// SelectMonitoredCampos picks the bounded subset of campos to place under
// region monitoring. Nearest-first by great-circle distance when a position
// is known (stable: equidistant campos keep catalog order); plain catalog
// order otherwise. Campos without valid coordinates are skipped.
func SelectMonitoredCampos(campos []model.Campo, position *model.LatLng, limit int) []model.Campo {
	if limit <= 0 {
		return nil
	}

	candidates := helper.FilterWithCoordinates(campos)
	if position != nil {
		helper.SortCamposByDistance(*position, candidates)
	}

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// BuildMonitoredRegions converts selected campos into circular regions of
// the standard radius.
func BuildMonitoredRegions(campos []model.Campo, radiusMeters float64) []model.MonitoredRegion {
	regions := make([]model.MonitoredRegion, 0, len(campos))
	for _, c := range campos {
		regions = append(regions, model.MonitoredRegion{
			ID:           c.ID,
			Center:       c.ToLatLng(),
			RadiusMeters: radiusMeters,
		})
	}
	return regions
}
