package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/delivery-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/httperr"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound troca gorm.ErrRecordNotFound pelo código de negócio
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return httperr.Translate(err)
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.TxRepository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Organization / Offering
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrganization(
	ctx context.Context,
	organizationID uint,
) (*models.Organization, error) {

	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, organizationID).Error; err != nil {
		return nil, notFound(err, httperr.CodeNotFound)
	}
	return &org, nil
}

func (r *AppointmentGormRepository) GetServiceOffering(
	ctx context.Context,
	offeringID uint,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).First(&offering, offeringID).Error; err != nil {
		return nil, notFound(err, httperr.CodeOfferingNotFound)
	}
	return &offering, nil
}

// LockServiceOffering serializa reservas da mesma oferta
func (r *AppointmentGormRepository) LockServiceOffering(
	ctx context.Context,
	offeringID uint,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&offering, offeringID).Error; err != nil {
		return nil, notFound(err, httperr.CodeOfferingNotFound)
	}
	return &offering, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWeeklySchedule(
	ctx context.Context,
	offeringID uint,
	weekday int,
) (*models.WeeklySchedule, error) {

	var ws models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where("service_offering_id = ? AND weekday = ?", offeringID, weekday).
		First(&ws).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ws, nil
}

func (r *AppointmentGormRepository) ListExceptionRules(
	ctx context.Context,
	offeringID uint,
	organizationID uint,
) ([]models.ExceptionRule, error) {

	var rules []models.ExceptionRule
	if err := r.db.WithContext(ctx).
		Where(
			"(scope = ? AND service_offering_id = ?) OR (scope = ? AND organization_id = ?)",
			models.RuleScopeOffering, offeringID,
			models.RuleScopeOrganization, organizationID,
		).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}

	return rules, nil
}

func (r *AppointmentGormRepository) ListBookedAppointments(
	ctx context.Context,
	offeringID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "date", "duration_minutes", "status").
		Where(
			"service_offering_id = ? AND status IN ? AND date >= ? AND date < ?",
			offeringID,
			domain.StatusStrings(domain.BookedStatuses),
			start.UTC(),
			end.UTC(),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("ServiceOffering").
		First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	organizationID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("ServiceOffering").
		Preload("User").
		Where(
			"organization_id = ? AND date >= ? AND date < ?",
			organizationID,
			start.UTC(),
			end.UTC(),
		).
		Order("date ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListActivities(
	ctx context.Context,
	appointmentID uint,
) ([]models.AppointmentActivity, error) {

	var acts []models.AppointmentActivity
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC, id ASC").
		Find(&acts).Error; err != nil {
		return nil, err
	}

	return acts, nil
}

// --------------------------------------------------
// Appointment (lock + write)
// --------------------------------------------------

// GetAppointmentForUpdate trava a linha até o fim da transação e carrega a
// oferta usada na autorização.
func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound)
	}

	if err := r.db.WithContext(ctx).
		First(&ap.ServiceOffering, ap.ServiceOfferingID).Error; err != nil {
		return nil, notFound(err, httperr.CodeOfferingNotFound)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.Date = ap.Date.UTC()
	if ap.Version == 0 {
		ap.Version = 1
	}
	return httperr.Translate(
		r.db.WithContext(ctx).Omit("ServiceOffering", "User").Create(ap).Error,
	)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.Date = ap.Date.UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND version = ?", ap.ID, ap.Version).
		Updates(map[string]any{
			"status":                  ap.Status,
			"date":                    ap.Date,
			"duration_minutes":        ap.DurationMinutes,
			"pending_previous_status": ap.PendingPreviousStatus,
			"pending_date":            ap.PendingDate,
			"notes":                   ap.Notes,
			"cancelled_at":            ap.CancelledAt,
			"completed_at":            ap.CompletedAt,
			"version":                 ap.Version + 1,
		})

	if res.Error != nil {
		return fmt.Errorf("update appointment %d: %w", ap.ID, httperr.Translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeConcurrentModification)
	}

	ap.Version++
	return nil
}

// --------------------------------------------------
// Activity log
// --------------------------------------------------

func (r *AppointmentGormRepository) AppendActivity(
	ctx context.Context,
	activity *models.AppointmentActivity,
) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *AppointmentGormRepository) LatestActivityWithStatus(
	ctx context.Context,
	appointmentID uint,
	newStatus string,
) (*models.AppointmentActivity, error) {

	var act models.AppointmentActivity
	err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND new_status = ?", appointmentID, newStatus).
		Order("created_at DESC, id DESC").
		First(&act).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &act, nil
}

// Compile-time check
var (
	_ domain.Repository   = (*AppointmentGormRepository)(nil)
	_ domain.TxRepository = (*AppointmentGormRepository)(nil)
	_ availability.Reader = (*AppointmentGormRepository)(nil)
)
