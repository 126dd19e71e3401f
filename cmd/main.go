package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"Campos-App/internal/application"
	"Campos-App/internal/config"
	"Campos-App/internal/domain/event"
	"Campos-App/internal/domain/model"
	"Campos-App/internal/handler"
	"Campos-App/internal/infrastructure/auth"
	"Campos-App/internal/infrastructure/cache"
	"Campos-App/internal/infrastructure/database"
	"Campos-App/internal/infrastructure/location"
	"Campos-App/internal/infrastructure/notification"
	"Campos-App/internal/repository"
	"Campos-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}
	logger := zap.L()
	defer logger.Sync()

	supabaseClient, err := database.NewSupabaseClient()
	if err != nil {
		logger.Fatal("supabase client initialization failed", zap.Error(err))
	}
	if err := supabaseClient.HealthCheck(); err != nil {
		logger.Fatal("supabase health check failed", zap.Error(err))
	}
	logger.Info("supabase connection established")

	// Repositories. Catalog reads go straight to the database when a DB
	// password is configured; everything else stays on PostgREST.
	camposRepo := repository.NewSupabaseCamposRepository(supabaseClient)
	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		pgClient, err := database.NewPostgreSQLClientWithRetry(3, 2*time.Second)
		if err != nil {
			logger.Warn("direct postgres unavailable, staying on PostgREST", zap.Error(err))
		} else {
			defer pgClient.Close()
			camposRepo = repository.NewPostgresCamposRepository(pgClient)
			logger.Info("catalog reads using direct postgres connection")
		}
	}
	contribRepo := repository.NewSupabaseContribucionesRepository(supabaseClient)
	visitasRepo := repository.NewSupabaseVisitasRepository(supabaseClient)
	logrosRepo := repository.NewSupabaseLogrosRepository(supabaseClient)
	nivelesRepo := repository.NewSupabaseNivelesRepository(supabaseClient)
	accesosRepo := repository.NewSupabaseAccesosRepository(supabaseClient)
	perfilesRepo := repository.NewSupabasePerfilesRepository(supabaseClient)

	// Infrastructure
	bus := event.NewBus()
	sessions := auth.NewSessionProvider(cfg.DefaultUserID)
	cacheStore := cache.NewCamposCacheStore(cfg.CacheDir)
	monitor := location.NewMonitor(logger)
	locationService := location.NewLocationService(monitor, model.OneShotPositionTimeout)

	scheduler := notification.NewLocalScheduler(func(alert notification.Alert) {
		logger.Info("notification delivered",
			zap.String("id", alert.ID), zap.String("title", alert.Title))
	}, logger)
	bridge := notification.NewBridge(scheduler, cfg.ReminderHour)
	bus.SubscribeXPUpdated(func(p event.ProgressPayload) {
		bridge.SyncDailyReminder(p.HasClaimedToday)
	})

	// Application services
	progressUsecase := usecase.NewProgressUsecase(
		visitasRepo, camposRepo, logrosRepo, nivelesRepo, accesosRepo, bus, logger)
	progressStore := application.NewProgressStore(bus)

	camposService := application.NewCamposService(camposRepo, contribRepo, cacheStore, logger)
	visitsService := application.NewVisitsService(
		visitasRepo, sessions, locationService, progressUsecase, bridge, bus, logger)
	geofenceService := application.NewGeofenceService(
		monitor, locationService, visitsService, application.GeofenceConfig{}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go geofenceService.Run(ctx)

	// Periodic staleness check; the real refresh gate lives inside.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				geofenceService.RefreshMonitoredRegionsIfNeeded(ctx)
			}
		}
	}()

	router := handler.NewRouter(handler.Handlers{
		Campos:   handler.NewCamposHandler(camposService),
		Visitas:  handler.NewVisitasHandler(camposService, visitsService),
		Progress: handler.NewProgressHandler(progressUsecase, progressStore, sessions),
		Perfil:   handler.NewPerfilHandler(perfilesRepo, sessions),
		Location: handler.NewLocationHandler(monitor, geofenceService, camposService),
	}, sessions)

	logger.Info("Campos-App server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
