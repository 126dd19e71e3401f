package location

import (
	"context"
	"fmt"
	"time"

	"Campos-App/internal/domain/model"
	"Campos-App/internal/domain/repository"
)

// LocationService one-shot position fixes with a hard timeout. The request
// races the platform callback against the deadline; whichever resolves
// first wins and the loser is inert (the fix channel is buffered, a late
// fix is simply discarded).
type LocationService struct {
	monitor repository.RegionMonitor
	timeout time.Duration
}

func NewLocationService(monitor repository.RegionMonitor, timeout time.Duration) *LocationService {
	if timeout <= 0 {
		timeout = model.OneShotPositionTimeout
	}
	return &LocationService{monitor: monitor, timeout: timeout}
}

// RequestCurrentPosition resolves exactly once with a fix or an error.
func (s *LocationService) RequestCurrentPosition(ctx context.Context) (*model.Position, error) {
	if s.monitor.AuthorizationStatus() == model.AuthDenied {
		return nil, fmt.Errorf("%w: location access refused", model.ErrPermissionDenied)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ch := s.monitor.RequestPosition(ctx)
	select {
	case fix := <-ch:
		if fix.AccuracyMeters < 0 {
			return nil, fmt.Errorf("%w: fix has negative accuracy", model.ErrPositionUnavailable)
		}
		return &fix, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: no fix within %s", model.ErrPositionUnavailable, s.timeout)
	}
}
