package repository

import (
	"context"

	"Campos-App/internal/domain/model"
)

// CamposRepository read access to the campo catalog. The catalog is owned
// by the backend; the core only reads it (plus user-driven detail edits).
type CamposRepository interface {
	GetAll(ctx context.Context) ([]model.Campo, error)
	GetByID(ctx context.Context, id string) (*model.Campo, error)
	// ListProvinciasByIDs returns the provincia of every campo in ids,
	// one entry per campo (duplicates included).
	ListProvinciasByIDs(ctx context.Context, ids []string) ([]string, error)
	Update(ctx context.Context, id string, update *model.CampoUpdate) error
}

// ContribucionesRepository approved user-submitted details per campo.
type ContribucionesRepository interface {
	ListApprovedByCampo(ctx context.Context, campoID string) ([]model.Contribucion, error)
}
