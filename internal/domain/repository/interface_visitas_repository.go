package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// VisitasRepository visit rows in the remote system of record. "No rows"
// is a normal result, never an error.
type VisitasRepository interface {
	// ListByUser all visits for a user, most recent first.
	ListByUser(ctx context.Context, userID string) ([]model.Visita, error)
	// ExistsSince reports whether a (user, campo) visit exists with
	// created_at >= since (wire-format timestamp).
	ExistsSince(ctx context.Context, userID, campoID, since string) (bool, error)
	// ExistsAny reports whether any (user, campo) visit exists at all.
	ExistsAny(ctx context.Context, userID, campoID string) (bool, error)
	Insert(ctx context.Context, visita *model.Visita) error
	// DeleteByUserAndCampo removes every visit row for the pair.
	DeleteByUserAndCampo(ctx context.Context, userID, campoID string) error
}
