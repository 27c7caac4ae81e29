package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RuleKindWholeDay        = "BLOCK_WHOLE_DAY"
	RuleKindTimeRange       = "BLOCK_TIME_RANGE"
	RuleKindCurrentWeekDays = "BLOCK_CURRENT_WEEK_DAYS"

	RuleScopeOffering     = "OFFERING"
	RuleScopeOrganization = "ORGANIZATION"

	WeekOfMonthFirst = "FIRST"
	WeekOfMonthLast  = "LAST"
)

type ExceptionRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Kind  string `gorm:"size:32;not null" json:"kind"`
	Scope string `gorm:"size:16;not null;default:'OFFERING'" json:"scope"`

	OrganizationID    uint  `gorm:"index" json:"organization_id"`
	ServiceOfferingID *uint `gorm:"index" json:"service_offering_id"`

	// só para escopo ORGANIZATION: vazio = todas as ofertas
	DeliveryTypes datatypes.JSONSlice[uint] `json:"delivery_types"`

	Date        *string `gorm:"size:10" json:"date"` // YYYY-MM-DD
	Weekday     *int    `json:"weekday"`
	WeekOfMonth string  `gorm:"size:8" json:"week_of_month"`
	Recurring   bool    `json:"recurring"`

	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`

	Weekdays datatypes.JSONSlice[int] `json:"weekdays"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
