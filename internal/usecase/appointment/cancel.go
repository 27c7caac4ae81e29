package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

func (e *Engine) Cancel(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpCancel, appointmentID, actor,
		func(_ context.Context, _ domain.TxRepository, _ *models.Appointment, now time.Time) ([]domain.Step, error) {
			return []domain.Step{{
				Status: domain.StatusCancelled,
				Mutate: domain.MarkCancelled(now),
				Activity: domain.Activity{
					Type:    domain.ActivityCancelled,
					Title:   "Agendamento cancelado",
					Content: reason,
				},
			}}, nil
		},
	)
}
