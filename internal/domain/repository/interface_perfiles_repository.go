package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// PerfilesRepository user profiles. GetByID returns (nil, nil) when the
// profile does not exist yet.
type PerfilesRepository interface {
	GetByID(ctx context.Context, userID string) (*model.Perfil, error)
	Upsert(ctx context.Context, perfil *model.Perfil) error
}
