package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// LogrosRepository achievement catalog and per-user unlocked set.
type LogrosRepository interface {
	ListAll(ctx context.Context) ([]model.Logro, error)
	// GetByID returns (nil, nil) when the achievement does not exist.
	GetByID(ctx context.Context, id string) (*model.Logro, error)
	Insert(ctx context.Context, logro *model.Logro) error

	ListUnlockedByUser(ctx context.Context, userID string) ([]model.LogroDesbloqueado, error)
	InsertUnlocked(ctx context.Context, unlocked *model.LogroDesbloqueado) error
}
