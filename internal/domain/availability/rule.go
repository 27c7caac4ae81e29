package availability

import "time"

type WeekOfMonth string

const (
	AnyWeek   WeekOfMonth = ""
	FirstWeek WeekOfMonth = "FIRST"
	LastWeek  WeekOfMonth = "LAST"
)

// DayMatch selects the days a rule applies to. Exactly one of Date or
// Weekday is meaningful; Recurring only matters together with Date.
type DayMatch struct {
	Date        *time.Time
	Weekday     *time.Weekday
	WeekOfMonth WeekOfMonth
	Recurring   bool
}

func (m DayMatch) Matches(ref time.Time) bool {
	if m.Date != nil {
		d := *m.Date
		if m.Recurring {
			return d.Month() == ref.Month() && d.Day() == ref.Day()
		}
		return d.Year() == ref.Year() && d.Month() == ref.Month() && d.Day() == ref.Day()
	}

	if m.Weekday != nil {
		if ref.Weekday() != *m.Weekday {
			return false
		}
		switch m.WeekOfMonth {
		case FirstWeek:
			return ref.Day() <= 7
		case LastWeek:
			return ref.Day()+7 > daysInMonth(ref)
		}
		return true
	}

	return false
}

// Rule is the closed set of exception rules. Only the variants declared in
// this file implement it.
type Rule interface {
	isRule()
}

type BlockWholeDay struct {
	Match DayMatch
}

type BlockTimeRange struct {
	Match DayMatch
	Range Block
}

// BlockCurrentWeekDays blocks whole days of the current Sunday-to-Saturday
// week only. It never recurs.
type BlockCurrentWeekDays struct {
	Weekdays []time.Weekday
}

func (BlockWholeDay) isRule()        {}
func (BlockTimeRange) isRule()       {}
func (BlockCurrentWeekDays) isRule() {}

// BlockedIntervals evaluates rule against the reference date. now anchors
// the "current week".
func BlockedIntervals(rule Rule, ref, now time.Time) []Block {
	switch r := rule.(type) {
	case BlockWholeDay:
		if r.Match.Matches(ref) {
			return []Block{{Start: 0, End: MinutesPerDay}}
		}
	case BlockTimeRange:
		if r.Match.Matches(ref) && r.Range.Len() > 0 {
			return []Block{r.Range}
		}
	case BlockCurrentWeekDays:
		if !sameWeek(ref, now) {
			return nil
		}
		for _, wd := range r.Weekdays {
			if wd == ref.Weekday() {
				return []Block{{Start: 0, End: MinutesPerDay}}
			}
		}
	}
	return nil
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// sameWeek compares civil dates: now is read in ref's location.
func sameWeek(ref, now time.Time) bool {
	return startOfWeek(ref).Equal(startOfWeek(now.In(ref.Location())))
}
