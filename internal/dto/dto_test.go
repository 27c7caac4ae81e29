package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/delivery-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

func TestFromSlots(t *testing.T) {
	got := FromSlots([]availability.Block{{Start: 540, End: 630}, {Start: 780, End: 870}})

	assert.Equal(t, []SlotDTO{
		{Start: "09:00", End: "10:30"},
		{Start: "13:00", End: "14:30"},
	}, got)
	assert.NotNil(t, FromSlots(nil))
}

func TestFromAppointmentUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	assert.NoError(t, err)

	ap := models.Appointment{
		ID:              3,
		Date:            time.Date(2030, 3, 12, 12, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
		Status:          "CONFIRMED",
		User:            models.User{Name: "Carrier"},
		ServiceOffering: models.ServiceOffering{Name: "Dock A"},
	}

	got := FromAppointment(ap, loc)
	assert.Equal(t, 9, got.StartTime.Hour())
	assert.Equal(t, 45, got.EndTime.Minute())
	assert.Equal(t, "Carrier", got.SupplierName)
	assert.Equal(t, "Dock A", got.OfferingName)
}
