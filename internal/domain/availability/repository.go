package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// Reader is everything the resolver needs from persistence.
type Reader interface {
	GetServiceOffering(
		ctx context.Context,
		offeringID uint,
	) (*models.ServiceOffering, error)

	GetOrganization(
		ctx context.Context,
		organizationID uint,
	) (*models.Organization, error)

	// GetWeeklySchedule returns nil, nil when the offering is closed on weekday.
	GetWeeklySchedule(
		ctx context.Context,
		offeringID uint,
		weekday int,
	) (*models.WeeklySchedule, error)

	// ListExceptionRules returns offering-scoped rules of the offering and
	// every organization-scoped rule of the organization.
	ListExceptionRules(
		ctx context.Context,
		offeringID uint,
		organizationID uint,
	) ([]models.ExceptionRule, error)

	// ListBookedAppointments lists appointments in a booked status starting
	// in [start, end). excludeID (when non-zero) is left out.
	ListBookedAppointments(
		ctx context.Context,
		offeringID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)
}
