package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// AddComment grava uma atividade COMMENT sem alterar o status
func (e *Engine) AddComment(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
	content string,
) (*models.Appointment, error) {

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	return e.run(ctx, domain.OpComment, appointmentID, actor,
		func(context.Context, domain.TxRepository, *models.Appointment, time.Time) ([]domain.Step, error) {
			return []domain.Step{{
				Activity: domain.Activity{
					Type:    domain.ActivityComment,
					Title:   "Comentário",
					Content: content,
				},
			}}, nil
		},
	)
}

func (e *Engine) ListActivities(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) ([]models.AppointmentActivity, error) {

	ap, err := e.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !domain.IsAuthorized(actor, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}

	return e.repo.ListActivities(ctx, appointmentID)
}
