package dto

import (
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	SupplierName string    `json:"supplier_name"`
	OfferingName string    `json:"offering_name"`
}

// FromAppointment converte para a listagem no fuso da organização
func FromAppointment(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.Date.In(loc),
		EndTime:      ap.End().In(loc),
		Status:       ap.Status,
		SupplierName: ap.User.Name,
		OfferingName: ap.ServiceOffering.Name,
	}
}
