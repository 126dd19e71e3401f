package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Campos-App/internal/application"
	"Campos-App/internal/domain/event"
	domain "Campos-App/internal/domain/model"
	"Campos-App/internal/infrastructure/auth"
	"Campos-App/internal/infrastructure/location"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

type stubCamposService struct {
	campos []domain.Campo
}

func (s *stubCamposService) FetchCampos(ctx context.Context, forceRefresh bool) ([]domain.Campo, error) {
	return s.campos, nil
}

func (s *stubCamposService) GetByID(ctx context.Context, id string) (*domain.Campo, error) {
	for i := range s.campos {
		if s.campos[i].ID == id {
			return &s.campos[i], nil
		}
	}
	return nil, nil
}

func (s *stubCamposService) LoadExtras(ctx context.Context, campoID string, forceRefresh bool) ([]domain.Contribucion, error) {
	return nil, nil
}

func (s *stubCamposService) UpdateCampo(ctx context.Context, id string, update *domain.CampoUpdate) error {
	return nil
}

func (s *stubCamposService) InvalidateCache() error { return nil }

type stubVisitsService struct {
	markedWith *domain.Position
}

func (s *stubVisitsService) RecordVisitIfAbsent(ctx context.Context, campo *domain.Campo) (domain.VisitOutcome, error) {
	return domain.VisitCreated, nil
}
func (s *stubVisitsService) MarkVisited(ctx context.Context, campoID string) error { return nil }
func (s *stubVisitsService) MarkVisitWithProximityCheck(ctx context.Context, campo *domain.Campo) error {
	return domain.ErrPositionUnavailable
}
func (s *stubVisitsService) MarkVisitedWithPosition(ctx context.Context, campo *domain.Campo, position domain.Position) error {
	s.markedWith = &position
	return nil
}
func (s *stubVisitsService) UnmarkVisited(ctx context.Context, campoID string) error { return nil }
func (s *stubVisitsService) IsVisited(ctx context.Context, campoID string) (bool, error) {
	return true, nil
}

type stubProgress struct {
	claimed bool
}

func (s *stubProgress) Recompute(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	return &domain.ProgressSnapshot{Level: 2, CurrentXP: 110, XPToNextLevel: 250}, nil
}

func (s *stubProgress) ClaimDailyReward(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	if s.claimed {
		return nil, domain.ErrAlreadyClaimed
	}
	s.claimed = true
	return &domain.ProgressSnapshot{Level: 2, CurrentXP: 130, HasClaimedToday: true}, nil
}

type stubPerfiles struct {
	perfil *domain.Perfil
}

func (s *stubPerfiles) GetByID(ctx context.Context, userID string) (*domain.Perfil, error) {
	return s.perfil, nil
}

func (s *stubPerfiles) Upsert(ctx context.Context, perfil *domain.Perfil) error {
	s.perfil = perfil
	return nil
}

type noPosition struct{}

func (noPosition) RequestCurrentPosition(ctx context.Context) (*domain.Position, error) {
	return nil, domain.ErrPositionUnavailable
}

func testRouter(t *testing.T) (*gin.Engine, *stubVisitsService, *stubProgress) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lat, lng := 42.8782, -8.5448
	campos := &stubCamposService{campos: []domain.Campo{
		{ID: "22222222-2222-2222-2222-222222222222", Nombre: "Campo de Vista Alegre", Latitud: &lat, Longitud: &lng},
	}}
	visits := &stubVisitsService{}
	progress := &stubProgress{}
	sessions := auth.NewSessionProvider("")

	monitor := location.NewMonitor(nil)
	bus := event.NewBus()
	geofence := application.NewGeofenceService(monitor, noPosition{}, visits, application.GeofenceConfig{}, nil)

	router := NewRouter(Handlers{
		Campos:   NewCamposHandler(campos),
		Visitas:  NewVisitasHandler(campos, visits),
		Progress: NewProgressHandler(progress, application.NewProgressStore(bus), sessions),
		Perfil:   NewPerfilHandler(&stubPerfiles{}, sessions),
		Location: NewLocationHandler(monitor, geofence, campos),
	}, sessions)

	return router, visits, progress
}

func do(router *gin.Engine, method, path, body string, withUser bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withUser {
		req.Header.Set(UserHeader, testUserID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodGet, "/api/health", "", false)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("catalog listing", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodGet, "/api/campos", "", false)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Campo de Vista Alegre")
	})

	t.Run("unknown campo is 404", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodGet, "/api/campos/99999999-9999-9999-9999-999999999999", "", false)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("progress requires a user", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodGet, "/api/progress", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = do(router, http.MethodGet, "/api/progress", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"current_xp":110`)
	})

	t.Run("malformed user header is rejected", func(t *testing.T) {
		router, _, _ := testRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
		req.Header.Set(UserHeader, "not-a-uuid")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("mark visit with an explicit position", func(t *testing.T) {
		router, visits, _ := testRouter(t)
		body := `{"lat": 42.8782, "lng": -8.5448, "accuracy_meters": 15}`
		rec := do(router, http.MethodPost, "/api/campos/22222222-2222-2222-2222-222222222222/visita", body, true)
		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, visits.markedWith)
		assert.InDelta(t, 42.8782, visits.markedWith.Lat, 1e-9)
	})

	t.Run("mark visit without a fix is 503", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodPost, "/api/campos/22222222-2222-2222-2222-222222222222/visita", "", true)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("double reward claim is a conflict", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodPost, "/api/progress/daily-reward", "", true)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = do(router, http.MethodPost, "/api/progress/daily-reward", "", true)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("latest progress is empty before any recompute", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodGet, "/api/progress/latest", "", true)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("position updates feed the monitor", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodPost, "/api/location", `{"lat": 42.9, "lng": -8.5, "accuracy_meters": 10}`, false)
		assert.Equal(t, http.StatusAccepted, rec.Code)

		rec = do(router, http.MethodPost, "/api/location", `{"lat": 200, "lng": -8.5}`, false)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("perfil update echoes the stored profile", func(t *testing.T) {
		router, _, _ := testRouter(t)
		rec := do(router, http.MethodPut, "/api/perfil", `{"nombre": "María", "apellidos": "Souto"}`, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "María")
	})
}
