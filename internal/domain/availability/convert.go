package availability

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

// AppliesTo resolve o escopo da regra de forma uniforme: regras de oferta
// valem só para a própria oferta; regras de organização valem para as
// ofertas da allow-list (vazia = todas).
func AppliesTo(r models.ExceptionRule, offeringID uint) bool {
	if r.Scope == models.RuleScopeOrganization {
		if len(r.DeliveryTypes) == 0 {
			return true
		}
		for _, id := range r.DeliveryTypes {
			if id == offeringID {
				return true
			}
		}
		return false
	}
	return r.ServiceOfferingID != nil && *r.ServiceOfferingID == offeringID
}

// RuleFromModel converts a persisted rule into its variant.
func RuleFromModel(r models.ExceptionRule) (Rule, error) {
	switch r.Kind {
	case models.RuleKindWholeDay:
		match, err := dayMatchFromModel(r)
		if err != nil {
			return nil, err
		}
		return BlockWholeDay{Match: match}, nil

	case models.RuleKindTimeRange:
		match, err := dayMatchFromModel(r)
		if err != nil {
			return nil, err
		}
		if r.StartMinute >= r.EndMinute {
			return nil, fmt.Errorf("rule %d: start minute %d not before end minute %d", r.ID, r.StartMinute, r.EndMinute)
		}
		return BlockTimeRange{
			Match: match,
			Range: Block{Start: r.StartMinute, End: r.EndMinute},
		}, nil

	case models.RuleKindCurrentWeekDays:
		weekdays := make([]time.Weekday, 0, len(r.Weekdays))
		for _, wd := range r.Weekdays {
			if wd < 0 || wd > 6 {
				return nil, fmt.Errorf("rule %d: invalid weekday %d", r.ID, wd)
			}
			weekdays = append(weekdays, time.Weekday(wd))
		}
		return BlockCurrentWeekDays{Weekdays: weekdays}, nil
	}

	return nil, fmt.Errorf("rule %d: unknown kind %q", r.ID, r.Kind)
}

func dayMatchFromModel(r models.ExceptionRule) (DayMatch, error) {
	match := DayMatch{
		WeekOfMonth: WeekOfMonth(r.WeekOfMonth),
		Recurring:   r.Recurring,
	}

	switch {
	case r.Date != nil && *r.Date != "":
		d, err := time.Parse("2006-01-02", *r.Date)
		if err != nil {
			return DayMatch{}, fmt.Errorf("rule %d: invalid date: %w", r.ID, err)
		}
		match.Date = &d
	case r.Weekday != nil:
		if *r.Weekday < 0 || *r.Weekday > 6 {
			return DayMatch{}, fmt.Errorf("rule %d: invalid weekday %d", r.ID, *r.Weekday)
		}
		wd := time.Weekday(*r.Weekday)
		match.Weekday = &wd
	default:
		return DayMatch{}, fmt.Errorf("rule %d: needs a date or a weekday", r.ID)
	}

	switch match.WeekOfMonth {
	case AnyWeek, FirstWeek, LastWeek:
	default:
		return DayMatch{}, fmt.Errorf("rule %d: invalid week of month %q", r.ID, r.WeekOfMonth)
	}

	return match, nil
}
