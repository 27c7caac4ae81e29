package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/dto"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

// ListByDate lista os agendamentos do dia (fuso da organização).
// Fornecedores só enxergam os próprios.
func (e *Engine) ListByDate(
	ctx context.Context,
	actor domain.Actor,
	organizationID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	return e.listPeriod(ctx, actor, organizationID, func(loc *time.Location) (time.Time, time.Time, error) {
		start, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, start.AddDate(0, 0, 1), nil
	})
}

func (e *Engine) ListByMonth(
	ctx context.Context,
	actor domain.Actor,
	organizationID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	return e.listPeriod(ctx, actor, organizationID, func(loc *time.Location) (time.Time, time.Time, error) {
		if month < 1 || month > 12 || year < 1 {
			return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), nil
	})
}

func (e *Engine) listPeriod(
	ctx context.Context,
	actor domain.Actor,
	organizationID uint,
	period func(loc *time.Location) (time.Time, time.Time, error),
) ([]dto.AppointmentListDTO, error) {

	if !domain.CanViewOrganization(actor, organizationID) {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	org, err := e.repo.GetOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(org.Timezone)
	start, end, err := period(loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	appointments, err := e.repo.ListAppointmentsForPeriod(ctx, organizationID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		if actor.Role == domain.RoleSupplier && ap.UserID != actor.UserID {
			continue
		}
		out = append(out, dto.FromAppointment(ap, loc))
	}

	return out, nil
}

// Get devolve um agendamento visível para o ator
func (e *Engine) Get(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := e.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !domain.IsAuthorized(actor, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeNotAuthorized)
	}

	return ap, nil
}
