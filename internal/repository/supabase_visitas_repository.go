package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/database"
)

type SupabaseVisitasRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseVisitasRepository(client *database.SupabaseClient) repository.VisitasRepository {
	return &SupabaseVisitasRepository{client: client}
}

func (r *SupabaseVisitasRepository) ListByUser(ctx context.Context, userID string) ([]model.Visita, error) {
	var visitas []model.Visita
	data, count, err := r.client.GetClient().From("visitas").
		Select("id,id_usuario,id_campo,created_at", "exact", false).
		Eq("id_usuario", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch visitas: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &visitas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal visitas: %w", err)
	}

	return visitas, nil
}

func (r *SupabaseVisitasRepository) ExistsSince(ctx context.Context, userID, campoID, since string) (bool, error) {
	var rows []model.Visita
	data, count, err := r.client.GetClient().From("visitas").
		Select("id,created_at", "exact", false).
		Eq("id_usuario", userID).
		Eq("id_campo", campoID).
		Gte("created_at", since).
		Limit(1, "").
		Execute()
	if err != nil {
		return false, fmt.Errorf("%w: failed to check visita window: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &rows); err != nil {
		return false, fmt.Errorf("failed to unmarshal visitas: %w", err)
	}

	return len(rows) > 0, nil
}

func (r *SupabaseVisitasRepository) ExistsAny(ctx context.Context, userID, campoID string) (bool, error) {
	var rows []model.Visita
	data, count, err := r.client.GetClient().From("visitas").
		Select("id_campo", "exact", false).
		Eq("id_usuario", userID).
		Eq("id_campo", campoID).
		Limit(1, "").
		Execute()
	if err != nil {
		return false, fmt.Errorf("%w: failed to check visita: %v", model.ErrRemoteUnavailable, err)
	}
	_ = count

	if err := json.Unmarshal(data, &rows); err != nil {
		return false, fmt.Errorf("failed to unmarshal visitas: %w", err)
	}

	return len(rows) > 0, nil
}

func (r *SupabaseVisitasRepository) Insert(ctx context.Context, visita *model.Visita) error {
	payload := map[string]string{
		"id_usuario": visita.IDUsuario,
		"id_campo":   visita.IDCampo,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal visita: %w", err)
	}

	_, _, err = r.client.GetClient().From("visitas").Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to insert visita: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}

func (r *SupabaseVisitasRepository) DeleteByUserAndCampo(ctx context.Context, userID, campoID string) error {
	_, _, err := r.client.GetClient().From("visitas").
		Delete("", "").
		Eq("id_usuario", userID).
		Eq("id_campo", campoID).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: failed to delete visitas: %v", model.ErrRemoteUnavailable, err)
	}

	return nil
}
