package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Campos-App/internal/domain/event"
	"Campos-App/internal/domain/model"
)

const testUserID = "11111111-1111-1111-1111-111111111111"
const testCampoID = "22222222-2222-2222-2222-222222222222"

type fakeAuth struct {
	userID string
}

func (f *fakeAuth) CurrentUserID() (string, bool) {
	return f.userID, f.userID != ""
}

type fakeVisitasRepo struct {
	mu      sync.Mutex
	rows    []model.Visita
	inserts int
	failing bool
}

func (f *fakeVisitasRepo) ListByUser(ctx context.Context, userID string) ([]model.Visita, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Visita, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeVisitasRepo) ExistsSince(ctx context.Context, userID, campoID, since string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.rows {
		if v.IDUsuario == userID && v.IDCampo == campoID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVisitasRepo) ExistsAny(ctx context.Context, userID, campoID string) (bool, error) {
	return f.ExistsSince(ctx, userID, campoID, "")
}

func (f *fakeVisitasRepo) Insert(ctx context.Context, visita *model.Visita) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return model.ErrRemoteUnavailable
	}
	f.inserts++
	f.rows = append(f.rows, *visita)
	return nil
}

func (f *fakeVisitasRepo) DeleteByUserAndCampo(ctx context.Context, userID, campoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []model.Visita
	for _, v := range f.rows {
		if v.IDUsuario != userID || v.IDCampo != campoID {
			kept = append(kept, v)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeVisitasRepo) insertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inserts
}

type fakeRecomputer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRecomputer) Recompute(ctx context.Context, userID string) (*model.ProgressSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &model.ProgressSnapshot{Level: 1}, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []string
}

func (f *fakeNotifier) VisitConfirmed(nombre string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, nombre)
}

type fixedPositions struct {
	position *model.Position
	err      error
}

func (f *fixedPositions) RequestCurrentPosition(ctx context.Context) (*model.Position, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.position, nil
}

func testCampo() *model.Campo {
	lat, lng := 42.8782, -8.5448
	return &model.Campo{ID: testCampoID, Nombre: "Campo de Vista Alegre", Latitud: &lat, Longitud: &lng}
}

func newTestVisitsService(repo *fakeVisitasRepo, auth *fakeAuth, positions PositionProvider) (VisitsService, *fakeRecomputer, *fakeNotifier) {
	recomputer := &fakeRecomputer{}
	notifier := &fakeNotifier{}
	svc := NewVisitsService(repo, auth, positions, recomputer, notifier, event.NewBus(), nil)
	return svc, recomputer, notifier
}

func TestRecordVisitIfAbsent(t *testing.T) {
	t.Run("second record on the same day is already existed", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, recomputer, notifier := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		outcome, err := svc.RecordVisitIfAbsent(context.Background(), testCampo())
		require.NoError(t, err)
		assert.Equal(t, model.VisitCreated, outcome)

		outcome, err = svc.RecordVisitIfAbsent(context.Background(), testCampo())
		require.NoError(t, err)
		assert.Equal(t, model.VisitAlreadyExisted, outcome)

		assert.Equal(t, 1, repo.insertCount())
		assert.Equal(t, 1, recomputer.calls)
		assert.Equal(t, []string{"Campo de Vista Alegre"}, notifier.confirmed)
	})

	t.Run("fails fast without a user", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, recomputer, _ := newTestVisitsService(repo, &fakeAuth{}, &fixedPositions{})

		outcome, err := svc.RecordVisitIfAbsent(context.Background(), testCampo())
		assert.ErrorIs(t, err, model.ErrNoAuthenticatedUser)
		assert.Equal(t, model.VisitFailed, outcome)
		assert.Equal(t, 0, repo.insertCount())
		assert.Equal(t, 0, recomputer.calls)
	})

	t.Run("rejects a malformed campo id", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, _, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		campo := testCampo()
		campo.ID = "not-a-uuid"
		outcome, err := svc.RecordVisitIfAbsent(context.Background(), campo)
		assert.Error(t, err)
		assert.Equal(t, model.VisitFailed, outcome)
	})

	t.Run("insert failure surfaces as failed", func(t *testing.T) {
		repo := &fakeVisitasRepo{failing: true}
		svc, _, notifier := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		outcome, err := svc.RecordVisitIfAbsent(context.Background(), testCampo())
		assert.ErrorIs(t, err, model.ErrRemoteUnavailable)
		assert.Equal(t, model.VisitFailed, outcome)
		assert.Empty(t, notifier.confirmed)
	})
}

func TestMarkVisitedWithPosition(t *testing.T) {
	campo := testCampo()

	t.Run("inside the manual radius records", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, _, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		// ~200m north of the campo.
		position := model.Position{
			LatLng:         model.LatLng{Lat: 42.88, Lng: -8.5448},
			AccuracyMeters: 15,
		}
		require.NoError(t, svc.MarkVisitedWithPosition(context.Background(), campo, position))
		assert.Equal(t, 1, repo.insertCount())
	})

	t.Run("outside the manual radius is rejected", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, _, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		// ~3km away.
		position := model.Position{
			LatLng:         model.LatLng{Lat: 42.905, Lng: -8.5448},
			AccuracyMeters: 15,
		}
		err := svc.MarkVisitedWithPosition(context.Background(), campo, position)
		assert.ErrorIs(t, err, model.ErrTooFarAway)
		assert.Equal(t, 0, repo.insertCount())
	})

	t.Run("imprecise fix is rejected", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, _, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		position := model.Position{
			LatLng:         model.LatLng{Lat: 42.8782, Lng: -8.5448},
			AccuracyMeters: model.MaxAllowedAccuracyMeters + 1,
		}
		err := svc.MarkVisitedWithPosition(context.Background(), campo, position)
		assert.ErrorIs(t, err, model.ErrPositionUnavailable)
	})

	t.Run("campo without coordinates is rejected", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		svc, _, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

		broken := &model.Campo{ID: testCampoID, Nombre: "sin coordenadas"}
		err := svc.MarkVisitedWithPosition(context.Background(), broken, model.Position{AccuracyMeters: 10})
		assert.ErrorIs(t, err, model.ErrInvalidCoordinate)
	})
}

func TestMarkVisitWithProximityCheck(t *testing.T) {
	t.Run("position errors abort before any write", func(t *testing.T) {
		repo := &fakeVisitasRepo{}
		positions := &fixedPositions{err: model.ErrPositionUnavailable}
		svc, _, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, positions)

		err := svc.MarkVisitWithProximityCheck(context.Background(), testCampo())
		assert.ErrorIs(t, err, model.ErrPositionUnavailable)
		assert.Equal(t, 0, repo.insertCount())
	})
}

func TestUnmarkVisited(t *testing.T) {
	repo := &fakeVisitasRepo{}
	svc, recomputer, _ := newTestVisitsService(repo, &fakeAuth{userID: testUserID}, &fixedPositions{})

	require.NoError(t, svc.MarkVisited(context.Background(), testCampoID))
	visited, err := svc.IsVisited(context.Background(), testCampoID)
	require.NoError(t, err)
	assert.True(t, visited)

	require.NoError(t, svc.UnmarkVisited(context.Background(), testCampoID))
	visited, err = svc.IsVisited(context.Background(), testCampoID)
	require.NoError(t, err)
	assert.False(t, visited)

	assert.Equal(t, 2, recomputer.calls)
}
