package appointment

import (
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// ===============================
// Transition steps
// ===============================

// Step is one appointment write plus the activity row that records it.
// Operations with a cascade (reject, approve cancellation, direct
// reschedule) produce two steps.
type Step struct {
	Status   Status
	Mutate   func(ap *models.Appointment)
	Activity Activity
}

type Activity struct {
	Type     ActivityType
	Title    string
	Content  string
	Previous Status
	New      Status
	Metadata map[string]any
}

// ===============================
// Domain Actions
// ===============================

func MarkCancelled(now time.Time) func(ap *models.Appointment) {
	return func(ap *models.Appointment) {
		ap.CancelledAt = &now
		ClearPending(ap)
	}
}

func MarkCompleted(now time.Time) func(ap *models.Appointment) {
	return func(ap *models.Appointment) {
		ap.CompletedAt = &now
	}
}

// SavePending guarda o status anterior (e a data proposta) ao entrar em
// *_REQUESTED.
func SavePending(previous Status, newDate *time.Time) func(ap *models.Appointment) {
	return func(ap *models.Appointment) {
		prev := string(previous)
		ap.PendingPreviousStatus = &prev
		ap.PendingDate = newDate
	}
}

func ClearPending(ap *models.Appointment) {
	ap.PendingPreviousStatus = nil
	ap.PendingDate = nil
}

func MoveTo(date time.Time) func(ap *models.Appointment) {
	return func(ap *models.Appointment) {
		ap.Date = date
		ClearPending(ap)
	}
}

// Chain aplica as mutações em ordem, ignorando nil
func Chain(fns ...func(ap *models.Appointment)) func(ap *models.Appointment) {
	return func(ap *models.Appointment) {
		for _, fn := range fns {
			if fn != nil {
				fn(ap)
			}
		}
	}
}
