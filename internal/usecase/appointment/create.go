package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	"github.com/BruksfildServices01/delivery-scheduler/internal/observability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ServiceOfferingID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// EXECUTE
// ======================================================

// Create registra um pedido de agendamento. O horário é revalidado contra
// a disponibilidade dentro da mesma transação que trava a oferta.
func (e *Engine) Create(
	ctx context.Context,
	actor domain.Actor,
	in CreateInput,
) (*models.Appointment, error) {

	ctx, span := observability.Tracer().Start(ctx, "appointment.create")
	defer span.End()
	span.SetAttributes(attribute.Int("offering.id", int(in.ServiceOfferingID)))

	now := e.now()

	var (
		ap    *models.Appointment
		orgID uint
		loc   *time.Location
	)

	err := e.repo.Transaction(ctx, func(tx domain.TxRepository) error {

		// --------------------------------------------------
		// 1️⃣ Oferta (trava reservas concorrentes)
		// --------------------------------------------------
		offering, err := tx.LockServiceOffering(ctx, in.ServiceOfferingID)
		if err != nil {
			return err
		}
		orgID = offering.OrganizationID

		if !domain.CanCreate(actor, offering) {
			return httperr.ErrBusiness(httperr.CodeForbidden)
		}

		org, err := tx.GetOrganization(ctx, offering.OrganizationID)
		if err != nil {
			return err
		}
		loc = timezone.Location(org.Timezone)

		// --------------------------------------------------
		// 2️⃣ Data / hora no fuso da organização
		// --------------------------------------------------
		start, err := timezone.ParseDateTime(in.Date, in.Time, org.Timezone)
		if err != nil || !start.After(now) {
			return httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}

		if !offering.Active || offering.DurationMinutes <= 0 {
			return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
		}

		// --------------------------------------------------
		// 3️⃣ Conflito e disponibilidade
		// --------------------------------------------------
		if err := assertNoOverlap(ctx, tx, offering.ID, 0, start, offering.DurationMinutes); err != nil {
			return err
		}

		frees, err := availability.FreeBlocks(ctx, tx, availability.DayQuery{
			Offering: offering,
			Date:     start,
			Location: loc,
			Now:      now,
		})
		if err != nil {
			return err
		}
		if !availability.FitsAt(frees, availability.MinuteOfDay(start), offering.DurationMinutes) {
			return httperr.ErrBusiness(httperr.CodeOutsideAvailability)
		}

		// --------------------------------------------------
		// 4️⃣ Criação + atividade CREATED
		// --------------------------------------------------
		ap = &models.Appointment{
			ServiceOfferingID: offering.ID,
			OrganizationID:    offering.OrganizationID,
			UserID:            actor.UserID,
			Date:              start,
			DurationMinutes:   offering.DurationMinutes,
			Status:            string(domain.InitialStatus()),
			Notes:             in.Notes,
			Version:           1,
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		ap.ServiceOffering = *offering

		return tx.AppendActivity(ctx, &models.AppointmentActivity{
			AppointmentID:  ap.ID,
			ActorUserID:    actor.UserID,
			Type:           string(domain.ActivityCreated),
			Title:          "Agendamento solicitado",
			Content:        in.Notes,
			PreviousStatus: "",
			NewStatus:      ap.Status,
		})
	})

	e.finish(ctx, domain.OpCreate, actor, 0, orgID, err)
	if err != nil {
		return nil, err
	}

	e.invalidate(ctx, ap.ServiceOfferingID, loc, ap.Date)
	return ap, nil
}
