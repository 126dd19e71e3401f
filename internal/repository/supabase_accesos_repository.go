package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabaseAccesosRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseAccesosRepository(client *database.SupabaseClient) repository.AccesosDiariosRepository {
	return &SupabaseAccesosRepository{client: client}
}

func (r *SupabaseAccesosRepository) ListByUser(ctx context.Context, userID string) ([]model.AccesoDiario, error) {
	var accesos []model.AccesoDiario
	data, count, err := r.client.GetClient().From("accesos_diarios").
		Select("id,id_usuario,ultimo_acceso,dias_consecutivos,ultima_recompensa_reclamada", "exact", false).
		Eq("id_usuario", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch accesos_diarios: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &accesos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accesos_diarios: %w", err)
	}

	return accesos, nil
}

func (r *SupabaseAccesosRepository) Insert(ctx context.Context, acceso *model.AccesoDiario) error {
	data, err := json.Marshal(acceso)
	if err != nil {
		return fmt.Errorf("failed to marshal acceso diario: %w", err)
	}

	_, _, err = r.client.GetClient().From("accesos_diarios").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to insert acceso diario: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}

func (r *SupabaseAccesosRepository) UpdateByUser(ctx context.Context, userID string, update *model.AccesoDiarioUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal acceso diario update: %w", err)
	}

	_, _, err = r.client.GetClient().From("accesos_diarios").
		Update(string(data), "", "").
		Eq("id_usuario", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to update acceso diario: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}

func (r *SupabaseAccesosRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, _, err := r.client.GetClient().From("accesos_diarios").
		Delete("", "").
		In("id", ids).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to delete accesos_diarios: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}
