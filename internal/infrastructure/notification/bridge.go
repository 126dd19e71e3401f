package notification

import (
	"fmt"
	"time"
)

const (
	// DailyReminderID single pending reminder for the unclaimed reward.
	DailyReminderID = "daily-reward-reminder"

	visitConfirmedDelay = 1 * time.Second
)

// Bridge app-facing notification surface: one alert per confirmed dwell,
// one recurring reminder while a daily reward is claimable.
type Bridge struct {
	sched        Scheduler
	reminderHour int
}

func NewBridge(sched Scheduler, reminderHour int) *Bridge {
	return &Bridge{sched: sched, reminderHour: reminderHour}
}

// VisitConfirmed fires shortly after a dwell completes.
func (b *Bridge) VisitConfirmed(campoNombre string) {
	b.sched.ScheduleAfter(
		"visit-confirmed",
		visitConfirmedDelay,
		"Visita registrada",
		fmt.Sprintf("Has estado 2 minutos en %s. ¡Visita confirmada!", campoNombre),
	)
}

// SyncDailyReminder keeps the reward reminder consistent with the claim
// state: no pending alert once today's reward is claimed.
func (b *Bridge) SyncDailyReminder(hasClaimedToday bool) {
	if hasClaimedToday {
		b.sched.CancelPending(DailyReminderID)
		return
	}
	b.sched.ScheduleDaily(
		DailyReminderID,
		b.reminderHour, 0,
		"Recompensa diaria",
		"Tu recompensa diaria te está esperando.",
	)
}
