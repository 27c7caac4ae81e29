package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// MarkAsCompleted só vale para agendamentos confirmados já no passado.
func (e *Engine) MarkAsCompleted(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpMarkAsCompleted, appointmentID, actor,
		func(_ context.Context, _ domain.TxRepository, _ *models.Appointment, now time.Time) ([]domain.Step, error) {
			return []domain.Step{{
				Status: domain.StatusCompleted,
				Mutate: domain.MarkCompleted(now),
				Activity: domain.Activity{
					Type:  domain.ActivityCompleted,
					Title: "Entrega concluída",
				},
			}}, nil
		},
	)
}

func (e *Engine) MarkAsNoShow(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpMarkAsNoShow, appointmentID, actor,
		func(context.Context, domain.TxRepository, *models.Appointment, time.Time) ([]domain.Step, error) {
			return []domain.Step{{
				Status: domain.StatusSupplierNoShow,
				Activity: domain.Activity{
					Type:  domain.ActivitySupplierNoShow,
					Title: "Fornecedor não compareceu",
				},
			}}, nil
		},
	)
}
