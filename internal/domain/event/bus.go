package event

import "sync"

// ProgressPayload snapshot published after every recompute or reward claim.
type ProgressPayload struct {
	XP                  int
	Level               int
	XPToNextLevel       int
	CamposVisitados     int
	ProvinciasVisitadas int
	DiasConsecutivos    int
	DailyXP             int
	HasClaimedToday     bool
}

// Bus in-process typed publish/subscribe. Replaces the stringly-typed
// global broadcasts of the mobile app with explicit payloads. Delivery is
// synchronous on the publisher's goroutine; subscribers must not block.
type Bus struct {
	mu          sync.RWMutex
	visitsSubs  []func()
	xpSubs      []func(ProgressPayload)
	unlockSubs  []func(ids []string)
}

func NewBus() *Bus {
	return &Bus{}
}

// SubscribeVisitsUpdated visit rows changed (created, marked or unmarked).
func (b *Bus) SubscribeVisitsUpdated(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visitsSubs = append(b.visitsSubs, fn)
}

// SubscribeXPUpdated derived progress state changed.
func (b *Bus) SubscribeXPUpdated(fn func(ProgressPayload)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.xpSubs = append(b.xpSubs, fn)
}

// SubscribeAchievementsUnlocked new achievements were unlocked.
func (b *Bus) SubscribeAchievementsUnlocked(fn func(ids []string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unlockSubs = append(b.unlockSubs, fn)
}

func (b *Bus) PublishVisitsUpdated() {
	b.mu.RLock()
	subs := make([]func(), len(b.visitsSubs))
	copy(subs, b.visitsSubs)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func (b *Bus) PublishXPUpdated(p ProgressPayload) {
	b.mu.RLock()
	subs := make([]func(ProgressPayload), len(b.xpSubs))
	copy(subs, b.xpSubs)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(p)
	}
}

func (b *Bus) PublishAchievementsUnlocked(ids []string) {
	if len(ids) == 0 {
		return
	}
	b.mu.RLock()
	subs := make([]func([]string), len(b.unlockSubs))
	copy(subs, b.unlockSubs)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ids)
	}
}
