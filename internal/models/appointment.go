package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceOfferingID uint            `gorm:"index" json:"service_offering_id"`
	ServiceOffering   ServiceOffering `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// denormalizado para escopo de autorização
	OrganizationID uint `gorm:"index" json:"organization_id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date            time.Time `gorm:"index" json:"date"`
	DurationMinutes int       `json:"duration_minutes"`

	Status string `gorm:"size:32;default:'PENDING_CONFIRMATION'" json:"status"`

	// estado salvo ao entrar em *_REQUESTED, limpo na resolução
	PendingPreviousStatus *string    `gorm:"size:32" json:"pending_previous_status,omitempty"`
	PendingDate           *time.Time `json:"pending_date,omitempty"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// End devolve o fim do atendimento
func (a *Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
