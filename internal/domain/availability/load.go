package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
	"github.com/BruksfildServices01/delivery-scheduler/internal/timezone"
)

// DayQuery describes one offering-day to resolve.
type DayQuery struct {
	Offering *models.ServiceOffering
	// qualquer instante do dia; o dia civil é tomado em Location
	Date     time.Time
	Location *time.Location
	Now      time.Time

	// nil = almoço da oferta
	Lunch *Block

	// agendamento ignorado na ocupação (o próprio, num reagendamento)
	ExcludeAppointmentID uint
}

// OfferingLunch returns the offering's lunch window, or nil when unset.
func OfferingLunch(o *models.ServiceOffering) *Block {
	if o.LunchStartMinute == nil || o.LunchEndMinute == nil {
		return nil
	}
	if *o.LunchStartMinute >= *o.LunchEndMinute {
		return nil
	}
	return &Block{Start: *o.LunchStartMinute, End: *o.LunchEndMinute}
}

// FreeBlocks loads everything the resolver needs for q and returns the
// free blocks of the day. A closed weekday yields no blocks.
func FreeBlocks(ctx context.Context, r Reader, q DayQuery) ([]Block, error) {
	loc := q.Location
	if loc == nil {
		loc = time.UTC
	}

	day := timezone.StartOfDay(q.Date, loc)
	offering := q.Offering

	ws, err := r.GetWeeklySchedule(ctx, offering.ID, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("load weekly schedule: %w", err)
	}
	if ws == nil || ws.StartMinute >= ws.EndMinute {
		return nil, nil
	}

	lunch := q.Lunch
	if lunch == nil {
		lunch = OfferingLunch(offering)
	}

	rows, err := r.ListExceptionRules(ctx, offering.ID, offering.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("load exception rules: %w", err)
	}

	rules := make([]Rule, 0, len(rows))
	for _, row := range rows {
		if !AppliesTo(row, offering.ID) {
			continue
		}
		rule, err := RuleFromModel(row)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	apps, err := r.ListBookedAppointments(ctx, offering.ID, day, day.AddDate(0, 0, 1), q.ExcludeAppointmentID)
	if err != nil {
		return nil, fmt.Errorf("load booked appointments: %w", err)
	}

	booked := make([]Block, 0, len(apps))
	for _, ap := range apps {
		booked = append(booked, BookedBlock(ap.Date.In(loc), ap.DurationMinutes))
	}

	return Resolve(ResolveInput{
		Date:   day,
		Now:    q.Now.In(loc),
		Window: &Block{Start: ws.StartMinute, End: ws.EndMinute},
		Lunch:  lunch,
		Rules:  rules,
		Booked: booked,
	}), nil
}
