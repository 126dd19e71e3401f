package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabasePerfilesRepository struct {
	client *database.SupabaseClient
}

func NewSupabasePerfilesRepository(client *database.SupabaseClient) repository.PerfilesRepository {
	return &SupabasePerfilesRepository{client: client}
}

func (r *SupabasePerfilesRepository) GetByID(ctx context.Context, userID string) (*model.Perfil, error) {
	var perfiles []model.Perfil
	data, count, err := r.client.GetClient().From("perfiles").
		Select("*", "exact", false).
		Eq("id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch perfil: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &perfiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal perfil: %w", err)
	}

	if len(perfiles) == 0 {
		return nil, nil
	}

	return &perfiles[0], nil
}

func (r *SupabasePerfilesRepository) Upsert(ctx context.Context, perfil *model.Perfil) error {
	data, err := json.Marshal(perfil)
	if err != nil {
		return fmt.Errorf("failed to marshal perfil: %w", err)
	}

	_, _, err = r.client.GetClient().From("perfiles").Insert(string(data), true, "id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to upsert perfil: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}
