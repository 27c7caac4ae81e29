package models

import "time"

// Oferta de serviço: o item agendável (duração, horário semanal, almoço)
type ServiceOffering struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	OrganizationID uint         `gorm:"index" json:"organization_id"`
	Organization   Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name            string `gorm:"size:100;not null" json:"name"`
	DurationMinutes int    `json:"duration_minutes"`

	// almoço em minutos desde meia-noite, aplicado a todos os dias abertos
	LunchStartMinute *int `json:"lunch_start_minute"`
	LunchEndMinute   *int `json:"lunch_end_minute"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
