package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
	"Campos-App/internal/infrastructure/cache"
)

// CamposService catalog reads with a file-backed read-through cache.
type CamposService interface {
	// FetchCampos returns the catalog sorted by name. A fresh-enough
	// cache satisfies the call without a remote round trip unless
	// forceRefresh is set. When the remote fails, any cached catalog
	// (even stale) is returned together with the error.
	FetchCampos(ctx context.Context, forceRefresh bool) ([]model.Campo, error)

	// GetByID returns (nil, nil) when the campo does not exist.
	GetByID(ctx context.Context, id string) (*model.Campo, error)

	// LoadExtras fetches the approved contribuciones for one campo,
	// cached with the same staleness policy as the catalog.
	LoadExtras(ctx context.Context, campoID string, forceRefresh bool) ([]model.Contribucion, error)

	// UpdateCampo applies a partial edit and drops the stale cache.
	UpdateCampo(ctx context.Context, id string, update *model.CampoUpdate) error

	// InvalidateCache drops the cached catalog and extras.
	InvalidateCache() error
}

type camposServiceImpl struct {
	camposRepo  repository.CamposRepository
	contribRepo repository.ContribucionesRepository
	store       *cache.CamposCacheStore
	ttl         time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

func NewCamposService(
	camposRepo repository.CamposRepository,
	contribRepo repository.ContribucionesRepository,
	store *cache.CamposCacheStore,
	logger *zap.Logger,
) CamposService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &camposServiceImpl{
		camposRepo:  camposRepo,
		contribRepo: contribRepo,
		store:       store,
		ttl:         model.CatalogCacheTTL,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *camposServiceImpl) FetchCampos(ctx context.Context, forceRefresh bool) ([]model.Campo, error) {
	cached := s.store.Load()
	if !forceRefresh && cached != nil && s.now().Sub(cached.LastUpdated) < s.ttl {
		return sortedByName(cached.Campos), nil
	}

	campos, err := s.camposRepo.GetAll(ctx)
	if err != nil {
		if cached != nil {
			s.logger.Warn("catalog fetch failed, serving stale cache",
				zap.Int("campos", len(cached.Campos)), zap.Error(err))
			return sortedByName(cached.Campos), err
		}
		return nil, fmt.Errorf("failed to fetch campos: %w", err)
	}

	if err := s.store.SaveCampos(campos, s.now()); err != nil {
		s.logger.Warn("failed to persist campos cache", zap.Error(err))
	}

	return sortedByName(campos), nil
}

func (s *camposServiceImpl) GetByID(ctx context.Context, id string) (*model.Campo, error) {
	if cached := s.store.Load(); cached != nil {
		for i := range cached.Campos {
			if cached.Campos[i].ID == id {
				campo := cached.Campos[i]
				return &campo, nil
			}
		}
	}

	campo, err := s.camposRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campo %s: %w", id, err)
	}
	return campo, nil
}

func (s *camposServiceImpl) LoadExtras(ctx context.Context, campoID string, forceRefresh bool) ([]model.Contribucion, error) {
	if !forceRefresh {
		if extras := s.store.LoadExtras(campoID); extras != nil && s.now().Sub(extras.LastUpdated) < s.ttl {
			return extras.Contribuciones, nil
		}
	}

	contribuciones, err := s.contribRepo.ListApprovedByCampo(ctx, campoID)
	if err != nil {
		if extras := s.store.LoadExtras(campoID); extras != nil {
			s.logger.Warn("extras fetch failed, serving stale cache",
				zap.String("campo", campoID), zap.Error(err))
			return extras.Contribuciones, err
		}
		return nil, fmt.Errorf("failed to fetch contribuciones for %s: %w", campoID, err)
	}

	if err := s.store.SaveExtras(campoID, cache.CampoExtras{
		Contribuciones: contribuciones,
		LastUpdated:    s.now(),
	}); err != nil {
		s.logger.Warn("failed to persist extras cache", zap.String("campo", campoID), zap.Error(err))
	}

	return contribuciones, nil
}

func (s *camposServiceImpl) UpdateCampo(ctx context.Context, id string, update *model.CampoUpdate) error {
	if update == nil {
		return errors.New("update payload is required")
	}
	if err := s.camposRepo.Update(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update campo %s: %w", id, err)
	}
	// The cached catalog is now stale; next read refetches.
	return s.store.Clear()
}

func (s *camposServiceImpl) InvalidateCache() error {
	return s.store.Clear()
}

func sortedByName(campos []model.Campo) []model.Campo {
	out := make([]model.Campo, len(campos))
	copy(out, campos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out
}
