package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// NivelesRepository persisted level rows. The engine upserts exactly one
// canonical row per user; extra rows are a data anomaly to collapse.
type NivelesRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.NivelData, error)
	Insert(ctx context.Context, nivel *model.NivelData) error
	Update(ctx context.Context, nivel *model.NivelData) error
	DeleteByUser(ctx context.Context, userID string) error
}
