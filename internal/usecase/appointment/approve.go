package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

func (e *Engine) Approve(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	return e.run(ctx, domain.OpApprove, appointmentID, actor,
		func(context.Context, domain.TxRepository, *models.Appointment, time.Time) ([]domain.Step, error) {
			return []domain.Step{{
				Status: domain.StatusConfirmed,
				Activity: domain.Activity{
					Type:  domain.ActivityStatusChange,
					Title: "Agendamento aprovado",
				},
			}}, nil
		},
	)
}
