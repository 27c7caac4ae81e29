package models

import "time"

type WeeklySchedule struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	ServiceOfferingID uint `gorm:"uniqueIndex:idx_schedule_offering_weekday" json:"service_offering_id"`

	Weekday int `gorm:"uniqueIndex:idx_schedule_offering_weekday" json:"weekday"`

	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
