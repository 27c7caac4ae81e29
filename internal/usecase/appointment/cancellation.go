package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// ===============================
// Request
// ===============================

func (e *Engine) RequestCancellation(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpRequestCancellation, appointmentID, actor,
		func(_ context.Context, _ domain.TxRepository, ap *models.Appointment, _ time.Time) ([]domain.Step, error) {
			return []domain.Step{{
				Status: domain.StatusCancellationRequested,
				Mutate: domain.SavePending(domain.Status(ap.Status), nil),
				Activity: domain.Activity{
					Type:     domain.ActivityStatusChange,
					Title:    "Cancelamento solicitado",
					Content:  reason,
					Metadata: reasonMetadata(reason),
				},
			}}, nil
		},
	)
}

// ===============================
// Approve
// ===============================

func (e *Engine) ApproveCancellation(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpApproveCancellation, appointmentID, actor,
		func(_ context.Context, _ domain.TxRepository, _ *models.Appointment, now time.Time) ([]domain.Step, error) {
			return []domain.Step{
				{
					Status: domain.StatusCancelled,
					Mutate: domain.ClearPending,
					Activity: domain.Activity{
						Type:  domain.ActivityStatusChange,
						Title: "Cancelamento aprovado",
					},
				},
				{
					Status: domain.StatusCancelled,
					Mutate: domain.MarkCancelled(now),
					Activity: domain.Activity{
						Type:     domain.ActivityCancelled,
						Title:    "Agendamento cancelado",
						Previous: domain.StatusCancellationRequested,
					},
				},
			}, nil
		},
	)
}

// ===============================
// Reject
// ===============================

// RejectCancellation devolve o agendamento ao status anterior ao pedido.
func (e *Engine) RejectCancellation(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpRejectCancellation, appointmentID, actor,
		func(ctx context.Context, tx domain.TxRepository, ap *models.Appointment, _ time.Time) ([]domain.Step, error) {
			restored, err := e.previousStatus(ctx, tx, ap, domain.StatusCancellationRequested)
			if err != nil {
				return nil, err
			}

			return []domain.Step{{
				Status: restored,
				Mutate: domain.ClearPending,
				Activity: domain.Activity{
					Type:    domain.ActivityStatusChange,
					Title:   "Cancelamento recusado",
					Content: reason,
				},
			}}, nil
		},
	)
}

func reasonMetadata(reason string) map[string]any {
	if reason == "" {
		return nil
	}
	return map[string]any{domain.MetadataReason: reason}
}
