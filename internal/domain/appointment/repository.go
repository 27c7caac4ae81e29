package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type Repository interface {
	// -------- Transaction --------
	// Transaction runs fn inside one database transaction; any error rolls
	// back every write made through tx.
	Transaction(
		ctx context.Context,
		fn func(tx TxRepository) error,
	) error

	GetOrganization(
		ctx context.Context,
		organizationID uint,
	) (*models.Organization, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	ListActivities(
		ctx context.Context,
		appointmentID uint,
	) ([]models.AppointmentActivity, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		organizationID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

type TxRepository interface {
	availability.Reader

	// -------- Locks --------
	GetAppointmentForUpdate(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	LockServiceOffering(
		ctx context.Context,
		offeringID uint,
	) (*models.ServiceOffering, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateAppointment persists ap only if its version is unchanged and
	// bumps the version.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Activity log --------
	AppendActivity(
		ctx context.Context,
		activity *models.AppointmentActivity,
	) error

	// LatestActivityWithStatus returns nil, nil when no row matches.
	LatestActivityWithStatus(
		ctx context.Context,
		appointmentID uint,
		newStatus string,
	) (*models.AppointmentActivity, error)
}
