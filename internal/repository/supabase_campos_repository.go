package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabaseCamposRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseCamposRepository(client *database.SupabaseClient) repository.CamposRepository {
	return &SupabaseCamposRepository{client: client}
}

func (r *SupabaseCamposRepository) GetAll(ctx context.Context) ([]model.Campo, error) {
	var campos []model.Campo
	data, count, err := r.client.GetClient().From("campos").Select("*", "exact", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch campos: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &campos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campos: %w", err)
	}

	return campos, nil
}

func (r *SupabaseCamposRepository) GetByID(ctx context.Context, id string) (*model.Campo, error) {
	var campos []model.Campo
	data, count, err := r.client.GetClient().From("campos").Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch campo %s: %v", model.ErrRemoteUnavailable, id, err)
	}
	_ = count

	if err := json.Unmarshal(data, &campos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campo: %w", err)
	}

	if len(campos) == 0 {
		return nil, nil
	}

	return &campos[0], nil
}

func (r *SupabaseCamposRepository) ListProvinciasByIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []struct {
		Provincia string `json:"provincia"`
	}
	data, count, err := r.client.GetClient().From("campos").
		Select("provincia", "exact", false).
		In("id", ids).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch provincias: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal provincias: %w", err)
	}

	provincias := make([]string, 0, len(rows))
	for _, row := range rows {
		provincias = append(provincias, row.Provincia)
	}
	return provincias, nil
}

func (r *SupabaseCamposRepository) Update(ctx context.Context, id string, update *model.CampoUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal campo update: %w", err)
	}

	_, _, err = r.client.GetClient().From("campos").Update(string(data), "", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to update campo %s: %v", model.ErrRemoteUnavailable, id, err)
	}

	return nil
}
