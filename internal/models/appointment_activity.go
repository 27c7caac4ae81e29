package models

import (
	"time"

	"gorm.io/datatypes"
)

// Registro imutável: nunca atualizado nem removido
type AppointmentActivity struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index:idx_activity_appointment_created" json:"appointment_id"`
	ActorUserID   uint `json:"actor_user_id"`

	TransitionID string `gorm:"size:36;index" json:"transition_id"`

	Type    string `gorm:"size:32;not null" json:"type"`
	Title   string `gorm:"size:150" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	PreviousStatus string `gorm:"size:32" json:"previous_status"`
	NewStatus      string `gorm:"size:32;index" json:"new_status"`

	Metadata datatypes.JSONMap `json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_activity_appointment_created" json:"created_at"`
}
