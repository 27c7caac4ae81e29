package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/BruksfildServices01/delivery-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	"github.com/BruksfildServices01/delivery-scheduler/internal/observability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

type AuditSink interface {
	Dispatch(ev audit.Event)
}

// SlotInvalidator apaga disponibilidade em cache de um dia da oferta
type SlotInvalidator interface {
	InvalidateDay(ctx context.Context, offeringID uint, date string) error
}

type Options struct {
	// sem status anterior recuperável: erro em vez de CONFIRMED
	StrictStatusRecovery bool
}

// Engine runs every lifecycle operation as one transaction: lock the
// appointment, authorize, check the precondition, then write each step
// together with its activity row.
type Engine struct {
	repo    domain.Repository
	audit   AuditSink
	slots   SlotInvalidator
	metrics *observability.Metrics
	logger  zerolog.Logger
	opts    Options
	now     func() time.Time
}

func NewEngine(
	repo domain.Repository,
	auditSink AuditSink,
	slots SlotInvalidator,
	metrics *observability.Metrics,
	logger zerolog.Logger,
	opts Options,
) *Engine {
	return &Engine{
		repo:    repo,
		audit:   auditSink,
		slots:   slots,
		metrics: metrics,
		logger:  logger,
		opts:    opts,
		now:     time.Now,
	}
}

// plan monta os passos a partir do agendamento já travado e autorizado
type plan func(
	ctx context.Context,
	tx domain.TxRepository,
	ap *models.Appointment,
	now time.Time,
) ([]domain.Step, error)

func (e *Engine) run(
	ctx context.Context,
	op domain.Operation,
	appointmentID uint,
	actor domain.Actor,
	build plan,
) (*models.Appointment, error) {

	ctx, span := observability.Tracer().Start(ctx, "appointment."+string(op))
	defer span.End()
	span.SetAttributes(
		attribute.Int("appointment.id", int(appointmentID)),
		attribute.String("actor.role", string(actor.Role)),
	)

	now := e.now()

	var (
		result  *models.Appointment
		orgID   uint
		loc     *time.Location
		touched []time.Time
	)

	err := e.repo.Transaction(ctx, func(tx domain.TxRepository) error {
		ap, err := tx.GetAppointmentForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}
		orgID = ap.OrganizationID

		if err := domain.Authorize(actor, ap, op); err != nil {
			return err
		}
		if err := domain.CheckPrecondition(op, ap, now); err != nil {
			return err
		}

		org, err := tx.GetOrganization(ctx, ap.ServiceOffering.OrganizationID)
		if err != nil {
			return err
		}
		loc = timezone.Location(org.Timezone)
		touched = append(touched, ap.Date)

		steps, err := build(ctx, tx, ap, now)
		if err != nil {
			return err
		}

		transitionID := uuid.NewString()
		for _, step := range steps {
			if err := e.applyStep(ctx, tx, ap, actor, transitionID, step); err != nil {
				return err
			}
		}

		touched = append(touched, ap.Date)
		result = ap
		return nil
	})

	e.finish(ctx, op, actor, appointmentID, orgID, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	e.invalidate(ctx, result.ServiceOfferingID, loc, touched...)
	return result, nil
}

// applyStep grava um passo: escrita no agendamento (se houver) e a linha de
// atividade correspondente.
func (e *Engine) applyStep(
	ctx context.Context,
	tx domain.TxRepository,
	ap *models.Appointment,
	actor domain.Actor,
	transitionID string,
	step domain.Step,
) error {

	previous := domain.Status(ap.Status)

	write := step.Mutate != nil
	if step.Status != "" {
		ap.Status = string(step.Status)
		write = true
	}
	if step.Mutate != nil {
		step.Mutate(ap)
	}

	if write {
		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
	}

	act := step.Activity
	if act.Previous == "" {
		act.Previous = previous
	}
	if act.New == "" {
		act.New = domain.Status(ap.Status)
	}

	return tx.AppendActivity(ctx, &models.AppointmentActivity{
		AppointmentID:  ap.ID,
		ActorUserID:    actor.UserID,
		TransitionID:   transitionID,
		Type:           string(act.Type),
		Title:          act.Title,
		Content:        act.Content,
		PreviousStatus: string(act.Previous),
		NewStatus:      string(act.New),
		Metadata:       act.Metadata,
	})
}

func (e *Engine) finish(
	ctx context.Context,
	op domain.Operation,
	actor domain.Actor,
	appointmentID uint,
	organizationID uint,
	err error,
) {
	if err == nil {
		e.metrics.ObserveTransition(string(op), "ok")
		e.logger.Debug().
			Str("operation", string(op)).
			Uint("appointment_id", appointmentID).
			Uint("actor_id", actor.UserID).
			Msg("appointment transition applied")
		return
	}

	code := httperr.CodeOf(err)
	if code == "" {
		e.metrics.ObserveTransition(string(op), "error")
		e.logger.Error().Err(err).
			Str("operation", string(op)).
			Uint("appointment_id", appointmentID).
			Msg("appointment transition failed")
		return
	}

	e.metrics.ObserveTransition(string(op), code)

	var action string
	switch code {
	case httperr.CodeNotAuthorized, httperr.CodeForbidden:
		action = "transition_denied"
	case httperr.CodeTimeConflict, httperr.CodeConcurrentModification:
		action = "appointment_conflict"
	default:
		return
	}

	if e.audit == nil || organizationID == 0 {
		return
	}

	userID := actor.UserID
	id := appointmentID
	e.audit.Dispatch(audit.Event{
		OrganizationID: organizationID,
		UserID:         &userID,
		Action:         action,
		Entity:         "appointment",
		EntityID:       &id,
		Metadata: map[string]string{
			"operation": string(op),
			"code":      code,
			"role":      string(actor.Role),
		},
	})
}

// invalidate descarta o cache dos dias afetados; falhas só são logadas
func (e *Engine) invalidate(
	ctx context.Context,
	offeringID uint,
	loc *time.Location,
	dates ...time.Time,
) {
	if e.slots == nil || loc == nil {
		return
	}

	seen := map[string]bool{}
	for _, d := range dates {
		day := d.In(loc).Format("2006-01-02")
		if seen[day] {
			continue
		}
		seen[day] = true

		if err := e.slots.InvalidateDay(ctx, offeringID, day); err != nil {
			e.logger.Warn().Err(err).
				Uint("offering_id", offeringID).
				Str("date", day).
				Msg("slot cache invalidation failed")
		}
	}
}
