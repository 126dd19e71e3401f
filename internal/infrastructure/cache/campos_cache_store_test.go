package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Campos-App/internal/domain/model"
)

func testCampos() []model.Campo {
	lat, lng := 42.8782, -8.5448
	return []model.Campo{
		{ID: "c1", Nombre: "Campo de Vista Alegre", Provincia: "A Coruña", Latitud: &lat, Longitud: &lng},
		{ID: "c2", Nombre: "Campo do Souto"},
	}
}

func TestCamposCacheStore(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		store := NewCamposCacheStore(t.TempDir())
		stamp := time.Now().Truncate(time.Second)

		require.NoError(t, store.SaveCampos(testCampos(), stamp))

		payload := store.Load()
		require.NotNil(t, payload)
		assert.Len(t, payload.Campos, 2)
		assert.Equal(t, "Campo de Vista Alegre", payload.Campos[0].Nombre)
		assert.True(t, payload.LastUpdated.Equal(stamp))
	})

	t.Run("missing file is a miss", func(t *testing.T) {
		store := NewCamposCacheStore(t.TempDir())
		assert.Nil(t, store.Load())
	})

	t.Run("corrupt file is a miss not an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{nope"), 0o644))

		store := NewCamposCacheStore(dir)
		assert.Nil(t, store.Load())
	})

	t.Run("extras survive a catalog rewrite", func(t *testing.T) {
		store := NewCamposCacheStore(t.TempDir())

		require.NoError(t, store.SaveExtras("c1", CampoExtras{
			Contribuciones: []model.Contribucion{{ID: "k1", IDCampo: "c1", Texto: "Portería nueva"}},
			LastUpdated:    time.Now(),
		}))
		require.NoError(t, store.SaveCampos(testCampos(), time.Now()))

		extras := store.LoadExtras("c1")
		require.NotNil(t, extras)
		assert.Len(t, extras.Contribuciones, 1)
		assert.Nil(t, store.LoadExtras("c2"))
	})

	t.Run("remove extras", func(t *testing.T) {
		store := NewCamposCacheStore(t.TempDir())
		require.NoError(t, store.SaveExtras("c1", CampoExtras{LastUpdated: time.Now()}))
		require.NoError(t, store.RemoveExtras("c1"))
		assert.Nil(t, store.LoadExtras("c1"))
	})

	t.Run("clear removes the file", func(t *testing.T) {
		store := NewCamposCacheStore(t.TempDir())
		require.NoError(t, store.SaveCampos(testCampos(), time.Now()))
		require.NoError(t, store.Clear())
		assert.Nil(t, store.Load())
		// Clearing twice is fine.
		require.NoError(t, store.Clear())
	})
}
