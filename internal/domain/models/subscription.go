package models

import "time"

// Periodicity represents how often a stored recurring profile is charged
type Periodicity string

const (
	PeriodicityWeekly     Periodicity = "weekly"
	PeriodicityBiWeekly   Periodicity = "biweekly"
	PeriodicityMonthly    Periodicity = "monthly"
	PeriodicityQuarterly  Periodicity = "quarterly"
	PeriodicityHalfYearly Periodicity = "halfyearly"
	PeriodicityYearly     Periodicity = "yearly"
)

// Periodicities lists every supported schedule in ascending interval order
var Periodicities = []Periodicity{
	PeriodicityWeekly,
	PeriodicityBiWeekly,
	PeriodicityMonthly,
	PeriodicityQuarterly,
	PeriodicityHalfYearly,
	PeriodicityYearly,
}

// RecurringSchedule describes a recurring profile to be created
type RecurringSchedule struct {
	ProfileID   string      `json:"profile_id" validate:"required,max=20"`
	Periodicity Periodicity `json:"periodicity" validate:"required,oneof=weekly biweekly monthly quarterly halfyearly yearly"`
	Payments    int         `json:"payments" validate:"required,gt=0"`
	StartingAt  time.Time   `json:"starting_at"`
}

// Validate checks the schedule fields
func (s RecurringSchedule) Validate() error {
	return validateStruct(s)
}
