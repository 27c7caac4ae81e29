package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// Reject recusa o pedido; REJECTED é imediatamente encadeado em CANCELLED.
func (e *Engine) Reject(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpReject, appointmentID, actor,
		func(_ context.Context, _ domain.TxRepository, _ *models.Appointment, now time.Time) ([]domain.Step, error) {
			return []domain.Step{
				{
					Status: domain.StatusRejected,
					Activity: domain.Activity{
						Type:    domain.ActivityStatusChange,
						Title:   "Agendamento recusado",
						Content: reason,
					},
				},
				{
					Status: domain.StatusCancelled,
					Mutate: domain.MarkCancelled(now),
					Activity: domain.Activity{
						Type:  domain.ActivityCancelled,
						Title: "Agendamento cancelado",
					},
				},
			}, nil
		},
	)
}
