package usecase

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
	"Campos-App/internal/domain/service"
)

// ProgressUsecase derives the gamification state from the visit ledger.
// The remote visit rows are the single source of truth; level rows and
// unlocked achievements are derived and self-healed on every recompute.
type ProgressUsecase interface {
	// Recompute re-derives XP, level, achievements and the daily access
	// record from scratch, persists the canonical rows and publishes
	// the result. Idempotent: a second run with no ledger change
	// produces the same snapshot and unlocks nothing.
	Recompute(ctx context.Context, userID string) (*model.ProgressSnapshot, error)

	// ClaimDailyReward grants today's streak XP exactly once per day.
	ClaimDailyReward(ctx context.Context, userID string) (*model.ProgressSnapshot, error)
}

type progressUsecaseImpl struct {
	visitasRepo repository.VisitasRepository
	camposRepo  repository.CamposRepository
	logrosRepo  repository.LogrosRepository
	nivelesRepo repository.NivelesRepository
	accesosRepo repository.AccesosDiariosRepository
	bus         *event.Bus
	now         func() time.Time
	logger      *zap.Logger
}

func NewProgressUsecase(
	visitasRepo repository.VisitasRepository,
	camposRepo repository.CamposRepository,
	logrosRepo repository.LogrosRepository,
	nivelesRepo repository.NivelesRepository,
	accesosRepo repository.AccesosDiariosRepository,
	bus *event.Bus,
	logger *zap.Logger,
) ProgressUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &progressUsecaseImpl{
		visitasRepo: visitasRepo,
		camposRepo:  camposRepo,
		logrosRepo:  logrosRepo,
		nivelesRepo: nivelesRepo,
		accesosRepo: accesosRepo,
		bus:         bus,
		now:         time.Now,
		logger:      logger,
	}
}

func (u *progressUsecaseImpl) Recompute(ctx context.Context, userID string) (*model.ProgressSnapshot, error) {
	if userID == "" {
		return nil, model.ErrNoAuthenticatedUser
	}

	visitas, err := u.visitasRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load visitas: %w", err)
	}

	campoIDs, visitTimes := u.digestVisits(visitas)
	camposVisitados := len(campoIDs)
	diasVisitados := service.ConsecutiveVisitDays(visitTimes)

	provinciasVisitadas, err := u.countDistinctProvincias(ctx, campoIDs)
	if err != nil {
		return nil, err
	}

	newlyUnlocked, achievementXP, err := u.syncAchievements(
		ctx, userID, camposVisitados, provinciasVisitadas, diasVisitados)
	if err != nil {
		return nil, err
	}

	totalXP := camposVisitados*model.XPPerCampo + achievementXP
	level, nextThreshold := service.LevelAndNextThreshold(totalXP)

	nivel := &model.NivelData{
		IDUsuario:     userID,
		Level:         level,
		CurrentXP:     totalXP,
		XPToNextLevel: nextThreshold,
	}
	if err := u.upsertNivel(ctx, userID, nivel); err != nil {
		return nil, err
	}

	streak, dailyXP, hasClaimedToday, err := u.checkDailyAccess(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &model.ProgressSnapshot{
		Level:               level,
		CurrentXP:           totalXP,
		XPToNextLevel:       nextThreshold,
		CamposVisitados:     camposVisitados,
		ProvinciasVisitadas: provinciasVisitadas,
		DiasConsecutivos:    streak,
		DailyXP:             dailyXP,
		HasClaimedToday:     hasClaimedToday,
		NewlyUnlocked:       newlyUnlocked,
	}

	u.publish(snapshot)
	u.bus.PublishAchievementsUnlocked(newlyUnlocked)

	return snapshot, nil
}

func (u *progressUsecaseImpl) ClaimDailyReward(ctx context.Context, userID string) (*model.ProgressSnapshot, error) {
	if userID == "" {
		return nil, model.ErrNoAuthenticatedUser
	}

	accesos, err := u.accesosRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load acceso diario: %w", err)
	}
	if len(accesos) == 0 {
		return nil, fmt.Errorf("%w: no daily access record for user", model.ErrDataAnomaly)
	}
	acceso := accesos[0]

	now := u.now()
	// Re-check inside the operation so a stale caller cannot double-grant.
	if u.claimedOn(acceso, now) {
		return nil, model.ErrAlreadyClaimed
	}

	claimedAt := helper.FormatRemoteTimestamp(now)
	lastAccess := claimedAt
	if acceso.UltimoAcceso != nil {
		lastAccess = *acceso.UltimoAcceso
	}
	if err := u.accesosRepo.UpdateByUser(ctx, userID, &model.AccesoDiarioUpdate{
		UltimoAcceso:              lastAccess,
		DiasConsecutivos:          acceso.DiasConsecutivos,
		UltimaRecompensaReclamada: &claimedAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist reward claim: %w", err)
	}

	niveles, err := u.nivelesRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load nivel: %w", err)
	}

	totalXP := 0
	if len(niveles) > 0 {
		totalXP = niveles[0].CurrentXP
	}

	dailyXP := service.DailyXPForStreak(acceso.DiasConsecutivos)
	totalXP += dailyXP
	level, nextThreshold := service.LevelAndNextThreshold(totalXP)

	nivel := &model.NivelData{
		IDUsuario:     userID,
		Level:         level,
		CurrentXP:     totalXP,
		XPToNextLevel: nextThreshold,
	}
	if err := u.upsertNivel(ctx, userID, nivel); err != nil {
		return nil, err
	}

	u.logger.Info("daily reward claimed",
		zap.String("user", userID),
		zap.Int("streak", acceso.DiasConsecutivos),
		zap.Int("xp", dailyXP))

	snapshot := &model.ProgressSnapshot{
		Level:            level,
		CurrentXP:        totalXP,
		XPToNextLevel:    nextThreshold,
		DiasConsecutivos: acceso.DiasConsecutivos,
		DailyXP:          dailyXP,
		HasClaimedToday:  true,
	}
	u.publish(snapshot)

	return snapshot, nil
}

// digestVisits distinct campo ids plus the parsed visit times. Rows with
// malformed timestamps are logged and skipped, never fatal.
func (u *progressUsecaseImpl) digestVisits(visitas []model.Visita) ([]string, []time.Time) {
	seen := make(map[string]struct{})
	var campoIDs []string
	var times []time.Time
	for _, v := range visitas {
		if _, ok := seen[v.IDCampo]; !ok {
			seen[v.IDCampo] = struct{}{}
			campoIDs = append(campoIDs, v.IDCampo)
		}
		if v.CreatedAt == "" {
			continue
		}
		t, err := helper.ParseRemoteTimestamp(v.CreatedAt)
		if err != nil {
			u.logger.Warn("skipping visit with malformed timestamp",
				zap.String("visita", v.ID), zap.Error(err))
			continue
		}
		times = append(times, t)
	}
	return campoIDs, times
}

func (u *progressUsecaseImpl) countDistinctProvincias(ctx context.Context, campoIDs []string) (int, error) {
	if len(campoIDs) == 0 {
		return 0, nil
	}
	provincias, err := u.camposRepo.ListProvinciasByIDs(ctx, campoIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load provincias: %w", err)
	}
	distinct := make(map[string]struct{})
	for _, p := range provincias {
		if p != "" {
			distinct[p] = struct{}{}
		}
	}
	return len(distinct), nil
}

// syncAchievements evaluates the catalog against the counters, persists
// new unlocks and returns the newly unlocked ids plus the XP sum of every
// unlocked achievement.
func (u *progressUsecaseImpl) syncAchievements(
	ctx context.Context, userID string, campos, provincias, dias int,
) ([]string, int, error) {
	catalog, err := u.logrosRepo.ListAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load logros: %w", err)
	}
	catalog, err = u.ensureInitialAchievement(ctx, catalog)
	if err != nil {
		return nil, 0, err
	}

	rows, err := u.logrosRepo.ListUnlockedByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load unlocked logros: %w", err)
	}
	unlocked := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		unlocked[row.IDLogro] = struct{}{}
	}

	var newlyUnlocked []string
	achievementXP := 0
	for i := range catalog {
		logro := &catalog[i]

		if _, has := unlocked[logro.ID]; has {
			achievementXP += logro.XPValue()
			continue
		}

		// The welcome achievement unlocks unconditionally on the first
		// recompute; everything else needs its condition met.
		if logro.ID != model.InitialAchievementID {
			if logro.Condicion == nil {
				continue
			}
			if !service.EvaluateAchievementCondition(*logro.Condicion, campos, provincias, dias) {
				continue
			}
		}

		if err := u.logrosRepo.InsertUnlocked(ctx, &model.LogroDesbloqueado{
			ID:              uuid.New().String(),
			IDUsuario:       userID,
			IDLogro:         logro.ID,
			FechaDesbloqueo: helper.FormatRemoteTimestamp(u.now()),
		}); err != nil {
			// Lost unlocks are healed by the next recompute.
			u.logger.Warn("failed to persist achievement unlock",
				zap.String("logro", logro.ID), zap.Error(err))
			continue
		}

		unlocked[logro.ID] = struct{}{}
		newlyUnlocked = append(newlyUnlocked, logro.ID)
		achievementXP += logro.XPValue()
		u.logger.Info("achievement unlocked",
			zap.String("user", userID), zap.String("logro", logro.Nombre))
	}

	return newlyUnlocked, achievementXP, nil
}

// ensureInitialAchievement self-heals the welcome achievement into the
// catalog when a fresh environment lacks it.
func (u *progressUsecaseImpl) ensureInitialAchievement(ctx context.Context, catalog []model.Logro) ([]model.Logro, error) {
	for i := range catalog {
		if catalog[i].ID == model.InitialAchievementID {
			return catalog, nil
		}
	}

	descripcion := "Bienvenido a Campos de Galicia"
	condicion := "campos_visitados>=0"
	orden := 0
	xp := model.InitialAchievementXP
	welcome := model.Logro{
		ID:          model.InitialAchievementID,
		Nombre:      "¡Bienvenido!",
		Descripcion: &descripcion,
		Condicion:   &condicion,
		Orden:       &orden,
		XP:          &xp,
	}
	if err := u.logrosRepo.Insert(ctx, &welcome); err != nil {
		return nil, fmt.Errorf("failed to seed welcome achievement: %w", err)
	}
	u.logger.Info("seeded missing welcome achievement")

	return append(catalog, welcome), nil
}

// upsertNivel keeps exactly one level row per user. Duplicate rows are a
// data anomaly: collapse them to the freshly derived row.
func (u *progressUsecaseImpl) upsertNivel(ctx context.Context, userID string, nivel *model.NivelData) error {
	rows, err := u.nivelesRepo.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load niveles: %w", err)
	}

	switch {
	case len(rows) == 0:
		if err := u.nivelesRepo.Insert(ctx, nivel); err != nil {
			return fmt.Errorf("failed to insert nivel: %w", err)
		}
	case len(rows) == 1:
		if err := u.nivelesRepo.Update(ctx, nivel); err != nil {
			return fmt.Errorf("failed to update nivel: %w", err)
		}
	default:
		u.logger.Warn("collapsing duplicate nivel rows",
			zap.String("user", userID), zap.Int("rows", len(rows)),
			zap.Error(model.ErrDataAnomaly))
		if err := u.nivelesRepo.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to collapse niveles: %w", err)
		}
		if err := u.nivelesRepo.Insert(ctx, nivel); err != nil {
			return fmt.Errorf("failed to insert nivel: %w", err)
		}
	}

	return nil
}

// checkDailyAccess rolls the daily streak forward and reports today's
// reward state. Duplicate rows are collapsed to the first.
func (u *progressUsecaseImpl) checkDailyAccess(ctx context.Context, userID string) (streak, dailyXP int, hasClaimedToday bool, err error) {
	now := u.now()

	accesos, err := u.accesosRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to load accesos diarios: %w", err)
	}

	if len(accesos) == 0 {
		nowWire := helper.FormatRemoteTimestamp(now)
		acceso := &model.AccesoDiario{
			ID:               uuid.New().String(),
			IDUsuario:        userID,
			UltimoAcceso:     &nowWire,
			DiasConsecutivos: 1,
		}
		if err := u.accesosRepo.Insert(ctx, acceso); err != nil {
			return 0, 0, false, fmt.Errorf("failed to create acceso diario: %w", err)
		}
		return 1, service.DailyXPForStreak(1), false, nil
	}

	if len(accesos) > 1 {
		extraIDs := make([]string, 0, len(accesos)-1)
		for _, extra := range accesos[1:] {
			extraIDs = append(extraIDs, extra.ID)
		}
		u.logger.Warn("collapsing duplicate acceso diario rows",
			zap.String("user", userID), zap.Int("rows", len(accesos)),
			zap.Error(model.ErrDataAnomaly))
		if err := u.accesosRepo.DeleteByIDs(ctx, extraIDs); err != nil {
			return 0, 0, false, fmt.Errorf("failed to collapse accesos diarios: %w", err)
		}
	}

	acceso := accesos[0]
	streak = acceso.DiasConsecutivos
	if streak < 1 {
		streak = 1
	}

	delta := 0
	if acceso.UltimoAcceso != nil {
		last, perr := helper.ParseRemoteTimestamp(*acceso.UltimoAcceso)
		if perr != nil {
			u.logger.Warn("malformed ultimo_acceso, restarting streak",
				zap.String("user", userID), zap.Error(perr))
			delta = 2
		} else {
			delta = helper.DayDelta(last, now)
		}
	} else {
		delta = 2
	}

	if delta != 0 {
		if delta == 1 {
			streak++
			if streak > model.MaxDailyStreak {
				streak = model.MaxDailyStreak
			}
		} else {
			streak = 1
		}
		nowWire := helper.FormatRemoteTimestamp(now)
		if err := u.accesosRepo.UpdateByUser(ctx, userID, &model.AccesoDiarioUpdate{
			UltimoAcceso:              nowWire,
			DiasConsecutivos:          streak,
			UltimaRecompensaReclamada: acceso.UltimaRecompensaReclamada,
		}); err != nil {
			return 0, 0, false, fmt.Errorf("failed to roll acceso diario: %w", err)
		}
	}

	return streak, service.DailyXPForStreak(streak), u.claimedOn(acceso, now), nil
}

func (u *progressUsecaseImpl) claimedOn(acceso model.AccesoDiario, now time.Time) bool {
	if acceso.UltimaRecompensaReclamada == nil {
		return false
	}
	claimed, err := helper.ParseRemoteTimestamp(*acceso.UltimaRecompensaReclamada)
	if err != nil {
		u.logger.Warn("malformed ultima_recompensa_reclamada",
			zap.String("user", acceso.IDUsuario), zap.Error(err))
		return false
	}
	return helper.SameDay(claimed, now)
}

func (u *progressUsecaseImpl) publish(s *model.ProgressSnapshot) {
	u.bus.PublishXPUpdated(event.ProgressPayload{
		XP:                  s.CurrentXP,
		Level:               s.Level,
		XPToNextLevel:       s.XPToNextLevel,
		CamposVisitados:     s.CamposVisitados,
		ProvinciasVisitadas: s.ProvinciasVisitadas,
		DiasConsecutivos:    s.DiasConsecutivos,
		DailyXP:             s.DailyXP,
		HasClaimedToday:     s.HasClaimedToday,
	})
}
