package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Campos-App/internal/domain/model"
)

func TestDistanceMeters(t *testing.T) {
	santiago := model.LatLng{Lat: 42.8782, Lng: -8.5448}
	coruna := model.LatLng{Lat: 43.3623, Lng: -8.4115}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceMeters(santiago, santiago))
	})

	t.Run("Santiago to A Coruña is about 55km", func(t *testing.T) {
		d := DistanceMeters(santiago, coruna)
		assert.InDelta(t, 55000, d, 2000)
		assert.InDelta(t, 55, DistanceKm(santiago, coruna), 2)
	})

	t.Run("symmetric", func(t *testing.T) {
		assert.InDelta(t, DistanceMeters(santiago, coruna), DistanceMeters(coruna, santiago), 1e-6)
	})
}

func TestSortCamposByDistance(t *testing.T) {
	origin := model.LatLng{Lat: 42.8782, Lng: -8.5448}
	mk := func(id string, lat float64) model.Campo {
		lng := -8.5448
		return model.Campo{ID: id, Latitud: &lat, Longitud: &lng}
	}

	campos := []model.Campo{mk("far", 43.5), mk("near", 42.88), mk("mid", 43.0)}
	SortCamposByDistance(origin, campos)

	assert.Equal(t, "near", campos[0].ID)
	assert.Equal(t, "mid", campos[1].ID)
	assert.Equal(t, "far", campos[2].ID)
}

func TestFilterWithCoordinates(t *testing.T) {
	lat, lng := 42.9, -8.5
	badLat := 99.0
	campos := []model.Campo{
		{ID: "ok", Latitud: &lat, Longitud: &lng},
		{ID: "missing"},
		{ID: "out-of-range", Latitud: &badLat, Longitud: &lng},
	}

	kept := FilterWithCoordinates(campos)
	assert.Len(t, kept, 1)
	assert.Equal(t, "ok", kept[0].ID)
}
