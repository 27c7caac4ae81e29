package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

// previousStatus recupera o status anterior a um *_REQUESTED: primeiro o
// campo salvo no agendamento, depois a atividade mais recente que entrou
// em requested.
func (e *Engine) previousStatus(
	ctx context.Context,
	tx domain.TxRepository,
	ap *models.Appointment,
	requested domain.Status,
) (domain.Status, error) {

	if ap.PendingPreviousStatus != nil {
		if s := domain.Status(*ap.PendingPreviousStatus); s.IsValid() {
			return s, nil
		}
	}

	act, err := tx.LatestActivityWithStatus(ctx, ap.ID, string(requested))
	if err != nil {
		return "", err
	}
	if act != nil {
		if s := domain.Status(act.PreviousStatus); s.IsValid() {
			return s, nil
		}
	}

	if e.opts.StrictStatusRecovery {
		return "", httperr.ErrBusiness(httperr.CodeRecoveryAmbiguous)
	}

	e.logger.Warn().
		Uint("appointment_id", ap.ID).
		Str("requested", string(requested)).
		Msg("previous status not found, falling back to CONFIRMED")

	return domain.StatusConfirmed, nil
}

// pendingDate recupera a data proposta de um reagendamento pendente
func pendingDate(
	ctx context.Context,
	tx domain.TxRepository,
	ap *models.Appointment,
) (time.Time, error) {

	if ap.PendingDate != nil {
		return *ap.PendingDate, nil
	}

	act, err := tx.LatestActivityWithStatus(ctx, ap.ID, string(domain.StatusRescheduleRequested))
	if err != nil {
		return time.Time{}, err
	}
	if act != nil {
		if raw, ok := act.Metadata[domain.MetadataNewDate].(string); ok {
			if d, err := time.Parse(time.RFC3339, raw); err == nil {
				return d, nil
			}
		}
	}

	return time.Time{}, httperr.ErrBusiness(httperr.CodeRescheduleDateNotFound)
}

// assertNoOverlap compara em tempo absoluto com os outros agendamentos
// que ocupam horário na oferta.
func assertNoOverlap(
	ctx context.Context,
	tx domain.TxRepository,
	offeringID uint,
	excludeID uint,
	start time.Time,
	durationMinutes int,
) error {

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	apps, err := tx.ListBookedAppointments(ctx, offeringID, start.Add(-24*time.Hour), end, excludeID)
	if err != nil {
		return err
	}

	for _, other := range apps {
		if other.Date.Before(end) && other.End().After(start) {
			return httperr.ErrBusiness(httperr.CodeTimeConflict)
		}
	}
	return nil
}

// assertReschedulable valida a nova data com as mesmas regras da criação:
// futura, sem conflito e dentro da disponibilidade do dia (o próprio
// agendamento não ocupa horário).
func assertReschedulable(
	ctx context.Context,
	tx domain.TxRepository,
	ap *models.Appointment,
	target time.Time,
	now time.Time,
) error {

	if !target.After(now) {
		return httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	if err := assertNoOverlap(ctx, tx, ap.ServiceOfferingID, ap.ID, target, ap.DurationMinutes); err != nil {
		return err
	}

	org, err := tx.GetOrganization(ctx, ap.ServiceOffering.OrganizationID)
	if err != nil {
		return err
	}
	loc := timezone.Location(org.Timezone)

	frees, err := availability.FreeBlocks(ctx, tx, availability.DayQuery{
		Offering:             &ap.ServiceOffering,
		Date:                 target,
		Location:             loc,
		Now:                  now,
		ExcludeAppointmentID: ap.ID,
	})
	if err != nil {
		return err
	}

	if !availability.FitsAt(frees, availability.MinuteOfDay(target.In(loc)), ap.DurationMinutes) {
		return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
