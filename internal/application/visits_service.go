package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Campos-App/internal/domain/event"
	"Campos-App/internal/domain/helper"
	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
)

// ProgressRecomputer re-derives the user's progress after a ledger change.
type ProgressRecomputer interface {
	Recompute(ctx context.Context, userID string) (*model.ProgressSnapshot, error)
}

// VisitNotifier user-facing confirmation of an automatic visit.
type VisitNotifier interface {
	VisitConfirmed(campoNombre string)
}

// PositionProvider one-shot location fix.
type PositionProvider interface {
	RequestCurrentPosition(ctx context.Context) (*model.Position, error)
}

// VisitsService the visit ledger: idempotent per-day recording for the
// geofence path, manual marking with proximity enforcement, and unmarking.
type VisitsService interface {
	// RecordVisitIfAbsent records at most one visit per (user, campo)
	// per local calendar day. VisitAlreadyExisted is a success.
	RecordVisitIfAbsent(ctx context.Context, campo *model.Campo) (model.VisitOutcome, error)

	// MarkVisited records a visit unconditionally (admin or restore
	// flows; no per-day window, no proximity check).
	MarkVisited(ctx context.Context, campoID string) error

	// MarkVisitWithProximityCheck acquires a fix and records the visit
	// only when the user is demonstrably near the campo.
	MarkVisitWithProximityCheck(ctx context.Context, campo *model.Campo) error

	// MarkVisitedWithPosition same policy with a caller-supplied fix.
	MarkVisitedWithPosition(ctx context.Context, campo *model.Campo, position model.Position) error

	// UnmarkVisited removes every visit row for the pair.
	UnmarkVisited(ctx context.Context, campoID string) error

	// IsVisited reports whether the user has ever visited the campo.
	IsVisited(ctx context.Context, campoID string) (bool, error)
}

type visitsServiceImpl struct {
	visitasRepo repository.VisitasRepository
	auth        repository.AuthProvider
	positions   PositionProvider
	progress    ProgressRecomputer
	notifier    VisitNotifier
	bus         *event.Bus
	now         func() time.Time
	logger      *zap.Logger
}

func NewVisitsService(
	visitasRepo repository.VisitasRepository,
	auth repository.AuthProvider,
	positions PositionProvider,
	progress ProgressRecomputer,
	notifier VisitNotifier,
	bus *event.Bus,
	logger *zap.Logger,
) VisitsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &visitsServiceImpl{
		visitasRepo: visitasRepo,
		auth:        auth,
		positions:   positions,
		progress:    progress,
		notifier:    notifier,
		bus:         bus,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *visitsServiceImpl) RecordVisitIfAbsent(ctx context.Context, campo *model.Campo) (model.VisitOutcome, error) {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		return model.VisitFailed, model.ErrNoAuthenticatedUser
	}
	if _, err := uuid.Parse(campo.ID); err != nil {
		return model.VisitFailed, fmt.Errorf("invalid campo id %q: %w", campo.ID, err)
	}

	since := helper.StartOfLocalDayUTC(s.now())
	exists, err := s.visitasRepo.ExistsSince(ctx, userID, campo.ID, since)
	if err != nil {
		return model.VisitFailed, fmt.Errorf("failed to check today's visit: %w", err)
	}
	if exists {
		s.logger.Debug("visit already recorded today",
			zap.String("campo", campo.ID), zap.String("user", userID))
		return model.VisitAlreadyExisted, nil
	}

	if err := s.visitasRepo.Insert(ctx, &model.Visita{IDUsuario: userID, IDCampo: campo.ID}); err != nil {
		return model.VisitFailed, fmt.Errorf("failed to record visit: %w", err)
	}

	s.logger.Info("visit recorded",
		zap.String("campo", campo.ID), zap.String("nombre", campo.Nombre))

	if s.notifier != nil {
		s.notifier.VisitConfirmed(campo.Nombre)
	}
	s.bus.PublishVisitsUpdated()
	s.recompute(ctx, userID)

	return model.VisitCreated, nil
}

func (s *visitsServiceImpl) MarkVisited(ctx context.Context, campoID string) error {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrNoAuthenticatedUser
	}

	if err := s.visitasRepo.Insert(ctx, &model.Visita{IDUsuario: userID, IDCampo: campoID}); err != nil {
		return fmt.Errorf("failed to mark visit: %w", err)
	}

	s.bus.PublishVisitsUpdated()
	s.recompute(ctx, userID)
	return nil
}

func (s *visitsServiceImpl) MarkVisitWithProximityCheck(ctx context.Context, campo *model.Campo) error {
	position, err := s.positions.RequestCurrentPosition(ctx)
	if err != nil {
		return err
	}
	return s.MarkVisitedWithPosition(ctx, campo, *position)
}

func (s *visitsServiceImpl) MarkVisitedWithPosition(ctx context.Context, campo *model.Campo, position model.Position) error {
	if !campo.HasValidCoordinates() {
		return fmt.Errorf("%w: campo %s", model.ErrInvalidCoordinate, campo.ID)
	}
	if !position.Usable() {
		return fmt.Errorf("%w: fix accuracy %.0fm exceeds %.0fm",
			model.ErrPositionUnavailable, position.AccuracyMeters, model.MaxAllowedAccuracyMeters)
	}

	distance := helper.DistanceMeters(position.LatLng, campo.ToLatLng())
	if distance > model.ManualVisitRadiusMeters {
		return fmt.Errorf("%w: %.0fm away from %s", model.ErrTooFarAway, distance, campo.Nombre)
	}

	return s.MarkVisited(ctx, campo.ID)
}

func (s *visitsServiceImpl) UnmarkVisited(ctx context.Context, campoID string) error {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		return model.ErrNoAuthenticatedUser
	}

	if err := s.visitasRepo.DeleteByUserAndCampo(ctx, userID, campoID); err != nil {
		return fmt.Errorf("failed to unmark visit: %w", err)
	}

	s.bus.PublishVisitsUpdated()
	s.recompute(ctx, userID)
	return nil
}

func (s *visitsServiceImpl) IsVisited(ctx context.Context, campoID string) (bool, error) {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		return false, model.ErrNoAuthenticatedUser
	}
	return s.visitasRepo.ExistsAny(ctx, userID, campoID)
}

// recompute progress derivation is best effort here: the visit row is
// already durable and the next recompute heals any gap.
func (s *visitsServiceImpl) recompute(ctx context.Context, userID string) {
	if s.progress == nil {
		return
	}
	if _, err := s.progress.Recompute(ctx, userID); err != nil {
		s.logger.Warn("progress recompute failed after ledger change",
			zap.String("user", userID), zap.Error(err))
	}
}
