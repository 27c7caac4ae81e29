package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// ===============================
// Request (supplier)
// ===============================

func (e *Engine) RequestReschedule(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	newDate time.Time,
	reason string,
) (*models.Appointment, error) {

	if newDate.IsZero() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	return e.run(ctx, domain.OpRequestReschedule, appointmentID, actor,
		func(_ context.Context, _ domain.TxRepository, ap *models.Appointment, now time.Time) ([]domain.Step, error) {
			if !newDate.After(now) {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
			}

			proposed := newDate.UTC()
			return []domain.Step{{
				Status: domain.StatusRescheduleRequested,
				Mutate: domain.SavePending(domain.Status(ap.Status), &proposed),
				Activity: domain.Activity{
					Type:    domain.ActivityRescheduleRequested,
					Title:   "Reagendamento solicitado",
					Content: reason,
					Metadata: map[string]any{
						domain.MetadataNewDate: formatDate(proposed),
						domain.MetadataReason:  reason,
					},
				},
			}}, nil
		},
	)
}

// ===============================
// Approve
// ===============================

// ApproveReschedule move o agendamento para a data proposta e confirma.
func (e *Engine) ApproveReschedule(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpApproveReschedule, appointmentID, actor,
		func(ctx context.Context, tx domain.TxRepository, ap *models.Appointment, now time.Time) ([]domain.Step, error) {
			newDate, err := pendingDate(ctx, tx, ap)
			if err != nil {
				return nil, err
			}

			if err := assertReschedulable(ctx, tx, ap, newDate, now); err != nil {
				return nil, err
			}

			return []domain.Step{{
				Status: domain.StatusConfirmed,
				Mutate: domain.MoveTo(newDate),
				Activity: domain.Activity{
					Type:  domain.ActivityRescheduleConfirmed,
					Title: "Reagendamento aprovado",
					Metadata: map[string]any{
						domain.MetadataPreviousDate: formatDate(ap.Date),
						domain.MetadataNewDate:      formatDate(newDate),
					},
				},
			}}, nil
		},
	)
}

// ===============================
// Reject
// ===============================

func (e *Engine) RejectReschedule(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpRejectReschedule, appointmentID, actor,
		func(ctx context.Context, tx domain.TxRepository, ap *models.Appointment, _ time.Time) ([]domain.Step, error) {
			restored, err := e.previousStatus(ctx, tx, ap, domain.StatusRescheduleRequested)
			if err != nil {
				return nil, err
			}

			return []domain.Step{{
				Status: restored,
				Mutate: domain.ClearPending,
				Activity: domain.Activity{
					Type:    domain.ActivityRescheduleRejected,
					Title:   "Reagendamento recusado",
					Content: reason,
				},
			}}, nil
		},
	)
}

// ===============================
// Direct (admin)
// ===============================

// Reschedule muda a data sem passar pela aprovação do fornecedor:
// RESCHEDULED e em seguida CONFIRMED.
func (e *Engine) Reschedule(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	newDate time.Time,
	reason string,
) (*models.Appointment, error) {

	if newDate.IsZero() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	return e.run(ctx, domain.OpReschedule, appointmentID, actor,
		func(ctx context.Context, tx domain.TxRepository, ap *models.Appointment, now time.Time) ([]domain.Step, error) {
			target := newDate.UTC()

			if err := assertReschedulable(ctx, tx, ap, target, now); err != nil {
				return nil, err
			}

			return []domain.Step{
				{
					Status: domain.StatusRescheduled,
					Mutate: domain.MoveTo(target),
					Activity: domain.Activity{
						Type:    domain.ActivityUpdated,
						Title:   "Agendamento reagendado",
						Content: reason,
						Metadata: map[string]any{
							domain.MetadataPreviousDate: formatDate(ap.Date),
							domain.MetadataNewDate:      formatDate(target),
							domain.MetadataReason:       reason,
						},
					},
				},
				{
					Status: domain.StatusConfirmed,
					Activity: domain.Activity{
						Type:  domain.ActivityStatusChange,
						Title: "Agendamento confirmado",
					},
				},
			}, nil
		},
	)
}
