package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabaseNivelesRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseNivelesRepository(client *database.SupabaseClient) repository.NivelesRepository {
	return &SupabaseNivelesRepository{client: client}
}

func (r *SupabaseNivelesRepository) ListByUser(ctx context.Context, userID string) ([]model.NivelData, error) {
	var niveles []model.NivelData
	data, count, err := r.client.GetClient().From("niveles").
		Select("id_usuario,level,current_xp,xp_to_next_level", "exact", false).
		Eq("id_usuario", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch niveles: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &niveles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal niveles: %w", err)
	}

	return niveles, nil
}

func (r *SupabaseNivelesRepository) Insert(ctx context.Context, nivel *model.NivelData) error {
	data, err := json.Marshal(nivel)
	if err != nil {
		return fmt.Errorf("failed to marshal nivel: %w", err)
	}

	_, _, err = r.client.GetClient().From("niveles").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to insert nivel: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}

func (r *SupabaseNivelesRepository) Update(ctx context.Context, nivel *model.NivelData) error {
	data, err := json.Marshal(nivel)
	if err != nil {
		return fmt.Errorf("failed to marshal nivel: %w", err)
	}

	_, _, err = r.client.GetClient().From("niveles").
		Update(string(data), "", "").
		Eq("id_usuario", nivel.IDUsuario).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to update nivel: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}

func (r *SupabaseNivelesRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, _, err := r.client.GetClient().From("niveles").
		Delete("", "").
		Eq("id_usuario", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to delete niveles: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}
