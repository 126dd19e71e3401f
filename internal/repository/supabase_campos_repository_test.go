package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Campos-App/internal/infrastructure/database"
)

// Integration test against a real Supabase project. Skipped unless the
// environment is configured.
func TestSupabaseCamposRepositoryIntegration(t *testing.T) {
	if os.Getenv("SUPABASE_URL") == "" || os.Getenv("SUPABASE_ANON_KEY") == "" {
		t.Skip("SUPABASE_URL / SUPABASE_ANON_KEY not set, skipping integration test")
	}

	client, err := database.NewSupabaseClient()
	require.NoError(t, err)
	repo := NewSupabaseCamposRepository(client)

	t.Run("catalog is readable", func(t *testing.T) {
		campos, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotEmpty(t, campos)

		for _, campo := range campos {
			assert.NotEmpty(t, campo.ID)
			assert.NotEmpty(t, campo.Nombre)
		}
	})

	t.Run("unknown id is a clean miss", func(t *testing.T) {
		campo, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-00000000dead")
		require.NoError(t, err)
		assert.Nil(t, campo)
	})
}
