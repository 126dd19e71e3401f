package notification

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuthorizationStatus notification permission state.
type AuthorizationStatus int

const (
	AuthorizationNotDetermined AuthorizationStatus = iota
	AuthorizationAuthorized
	AuthorizationProvisional
	AuthorizationDenied
)

// Alert a local user-visible notification about to be delivered.
type Alert struct {
	ID    string
	Title string
	Body  string
}

// Scheduler schedules local alerts for future delivery. Scheduling with an
// identifier that is already pending replaces the earlier alert.
type Scheduler interface {
	ScheduleAfter(id string, delay time.Duration, title, body string)
	ScheduleDaily(id string, hour, minute int, title, body string)
	CancelPending(id string)
	AuthorizationStatus() AuthorizationStatus
}

// LocalScheduler timer-backed Scheduler. Delivery goes through the
// injected callback (the platform notification hook); a nil callback
// degrades to logging, which keeps the core functional when notification
// permission is denied.
type LocalScheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	deliver func(Alert)
	status  AuthorizationStatus
	now     func() time.Time
	logger  *zap.Logger
}

func NewLocalScheduler(deliver func(Alert), logger *zap.Logger) *LocalScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalScheduler{
		pending: make(map[string]*time.Timer),
		deliver: deliver,
		status:  AuthorizationNotDetermined,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *LocalScheduler) ScheduleAfter(id string, delay time.Duration, title, body string) {
	alert := Alert{ID: id, Title: title, Body: body}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
	s.pending[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		s.fire(alert)
	})
}

// ScheduleDaily arms a recurring alert at a fixed wall-clock time. After
// each delivery the alert re-arms for the next day until canceled. The
// pending entry stays in place while the alert is being delivered, so a
// cancel racing the delivery still wins over the re-arm.
func (s *LocalScheduler) ScheduleDaily(id string, hour, minute int, title, body string) {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}

	alert := Alert{ID: id, Title: title, Body: body}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
	var armed *time.Timer
	armed = time.AfterFunc(next.Sub(now), func() {
		s.mu.Lock()
		if s.pending[id] != armed {
			// Canceled or replaced after the timer fired.
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.fire(alert)

		s.mu.Lock()
		live := s.pending[id] == armed
		if live {
			delete(s.pending, id)
		}
		s.mu.Unlock()
		if live {
			s.ScheduleDaily(id, hour, minute, title, body)
		}
	})
	s.pending[id] = armed
}

func (s *LocalScheduler) CancelPending(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

func (s *LocalScheduler) cancelLocked(id string) {
	if t, ok := s.pending[id]; ok {
		t.Stop()
		delete(s.pending, id)
	}
}

// PendingCount number of armed alerts.
func (s *LocalScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// HasPending reports whether an alert with the identifier is armed.
func (s *LocalScheduler) HasPending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

func (s *LocalScheduler) SetAuthorizationStatus(status AuthorizationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *LocalScheduler) AuthorizationStatus() AuthorizationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *LocalScheduler) fire(alert Alert) {
	if s.deliver != nil {
		s.deliver(alert)
		return
	}
	s.logger.Info("local alert", zap.String("id", alert.ID), zap.String("title", alert.Title))
}
