package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// AccesosDiariosRepository per-user daily access records.
type AccesosDiariosRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.AccesoDiario, error)
	Insert(ctx context.Context, acceso *model.AccesoDiario) error
	UpdateByUser(ctx context.Context, userID string, update *model.AccesoDiarioUpdate) error
	DeleteByIDs(ctx context.Context, ids []string) error
}
