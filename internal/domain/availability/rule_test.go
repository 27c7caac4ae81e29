package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekday(wd time.Weekday) *time.Weekday {
	return &wd
}

func TestBlockWholeDay_RecurringDate(t *testing.T) {
	date := day(2024, time.March, 10)
	rule := BlockWholeDay{Match: DayMatch{Date: &date, Recurring: true}}
	now := day(2024, time.January, 1)

	assert.Equal(t, []Block{{0, 1440}}, BlockedIntervals(rule, day(2025, time.March, 10), now))
	assert.Equal(t, []Block{{0, 1440}}, BlockedIntervals(rule, day(2026, time.March, 10), now))
	assert.Empty(t, BlockedIntervals(rule, day(2024, time.March, 11), now))
}

func TestBlockWholeDay_OneOffDate(t *testing.T) {
	date := day(2024, time.March, 10)
	rule := BlockWholeDay{Match: DayMatch{Date: &date}}
	now := day(2024, time.January, 1)

	assert.NotEmpty(t, BlockedIntervals(rule, day(2024, time.March, 10), now))
	assert.Empty(t, BlockedIntervals(rule, day(2025, time.March, 10), now))
}

func TestBlockTimeRange_Weekday(t *testing.T) {
	rule := BlockTimeRange{
		Match: DayMatch{Weekday: weekday(time.Wednesday)},
		Range: Block{Start: 600, End: 660},
	}
	now := day(2025, time.January, 1)

	// 2025-06-04 é quarta-feira
	assert.Equal(t, []Block{{600, 660}}, BlockedIntervals(rule, day(2025, time.June, 4), now))
	assert.Empty(t, BlockedIntervals(rule, day(2025, time.June, 5), now))
}

func TestBlockTimeRange_DateMatchesReferenceInItsOwnLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := day(2025, time.June, 4)
	rule := BlockTimeRange{Match: DayMatch{Date: &date}, Range: Block{Start: 480, End: 540}}

	ref := time.Date(2025, time.June, 4, 0, 0, 0, 0, loc)
	assert.Equal(t, []Block{{480, 540}}, BlockedIntervals(rule, ref, ref))
}

func TestWeekOfMonth(t *testing.T) {
	first := BlockWholeDay{Match: DayMatch{Weekday: weekday(time.Monday), WeekOfMonth: FirstWeek}}
	last := BlockWholeDay{Match: DayMatch{Weekday: weekday(time.Monday), WeekOfMonth: LastWeek}}
	now := day(2025, time.January, 1)

	// segundas de setembro/2025: 1, 8, 15, 22, 29
	assert.NotEmpty(t, BlockedIntervals(first, day(2025, time.September, 1), now))
	assert.Empty(t, BlockedIntervals(first, day(2025, time.September, 8), now))
	assert.NotEmpty(t, BlockedIntervals(last, day(2025, time.September, 29), now))
	assert.Empty(t, BlockedIntervals(last, day(2025, time.September, 22), now))

	// fevereiro/2026: última segunda é dia 23
	assert.NotEmpty(t, BlockedIntervals(last, day(2026, time.February, 23), now))
}

func TestBlockCurrentWeekDays(t *testing.T) {
	rule := BlockCurrentWeekDays{Weekdays: []time.Weekday{time.Monday, time.Friday}}

	// semana de domingo 2025-06-01 a sábado 2025-06-07
	now := time.Date(2025, time.June, 4, 15, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, BlockedIntervals(rule, day(2025, time.June, 2), now))
	assert.NotEmpty(t, BlockedIntervals(rule, day(2025, time.June, 6), now))
	assert.Empty(t, BlockedIntervals(rule, day(2025, time.June, 3), now), "tuesday not listed")
	assert.Empty(t, BlockedIntervals(rule, day(2025, time.June, 9), now), "next week's monday")
	assert.Empty(t, BlockedIntervals(rule, day(2025, time.May, 30), now), "previous week's friday")
}

func TestRuleWithoutDateOrWeekdayNeverMatches(t *testing.T) {
	rule := BlockWholeDay{}
	assert.Empty(t, BlockedIntervals(rule, day(2025, time.June, 4), day(2025, time.June, 4)))
}
