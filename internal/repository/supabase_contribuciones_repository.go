package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabaseContribucionesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseContribucionesRepository(client *database.SupabaseClient) repository.ContribucionesRepository {
	return &SupabaseContribucionesRepository{client: client}
}

func (r *SupabaseContribucionesRepository) ListApprovedByCampo(ctx context.Context, campoID string) ([]model.Contribucion, error) {
	var contribuciones []model.Contribucion
	data, count, err := r.client.GetClient().From("campo_contribuciones").
		Select("*", "exact", false).
		Eq("id_campo", campoID).
		Eq("aprobada", "true").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch contribuciones for campo %s: %v", model.ErrRemoteUnavailable, campoID, err)
	}
	_ = count

	if err := json.Unmarshal(data, &contribuciones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal contribuciones: %w", err)
	}

	return contribuciones, nil
}
