package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabaseLogrosRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseLogrosRepository(client *database.SupabaseClient) repository.LogrosRepository {
	return &SupabaseLogrosRepository{client: client}
}

func (r *SupabaseLogrosRepository) ListAll(ctx context.Context) ([]model.Logro, error) {
	var logros []model.Logro
	data, count, err := r.client.GetClient().From("logros").
		Select("id,nombre,descripcion,condicion,orden,xp", "exact", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch logros: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &logros); err != nil {
		return nil, fmt.Errorf("failed to unmarshal logros: %w", err)
	}

	return logros, nil
}

func (r *SupabaseLogrosRepository) GetByID(ctx context.Context, id string) (*model.Logro, error) {
	var logros []model.Logro
	data, count, err := r.client.GetClient().From("logros").
		Select("*", "exact", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch logro %s: %v", model.ErrRemoteUnavailable, id, err)
	}
	_ = count

	if err := json.Unmarshal(data, &logros); err != nil {
		return nil, fmt.Errorf("failed to unmarshal logro: %w", err)
	}

	if len(logros) == 0 {
		return nil, nil
	}

	return &logros[0], nil
}

func (r *SupabaseLogrosRepository) Insert(ctx context.Context, logro *model.Logro) error {
	data, err := json.Marshal(logro)
	if err != nil {
		return fmt.Errorf("failed to marshal logro: %w", err)
	}

	_, _, err = r.client.GetClient().From("logros").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to insert logro: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}

func (r *SupabaseLogrosRepository) ListUnlockedByUser(ctx context.Context, userID string) ([]model.LogroDesbloqueado, error) {
	var unlocked []model.LogroDesbloqueado
	data, count, err := r.client.GetClient().From("logros_desbloqueados").
		Select("id,id_usuario,id_logro,fecha_desbloqueo", "exact", false).
		Eq("id_usuario", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch logros_desbloqueados: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &unlocked); err != nil {
		return nil, fmt.Errorf("failed to unmarshal logros_desbloqueados: %w", err)
	}

	return unlocked, nil
}

func (r *SupabaseLogrosRepository) InsertUnlocked(ctx context.Context, unlocked *model.LogroDesbloqueado) error {
	data, err := json.Marshal(unlocked)
	if err != nil {
		return fmt.Errorf("failed to marshal logro desbloqueado: %w", err)
	}

	_, _, err = r.client.GetClient().From("logros_desbloqueados").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to insert logro desbloqueado: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}
