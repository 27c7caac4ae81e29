package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/delivery-scheduler/internal/models"
)

func uintPtr(v uint) *uint    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestAppliesTo(t *testing.T) {
	offering := models.ExceptionRule{Scope: models.RuleScopeOffering, ServiceOfferingID: uintPtr(7)}
	assert.True(t, AppliesTo(offering, 7))
	assert.False(t, AppliesTo(offering, 8))

	orgAll := models.ExceptionRule{Scope: models.RuleScopeOrganization}
	assert.True(t, AppliesTo(orgAll, 7))

	orgSome := models.ExceptionRule{Scope: models.RuleScopeOrganization, DeliveryTypes: []uint{3, 7}}
	assert.True(t, AppliesTo(orgSome, 7))
	assert.False(t, AppliesTo(orgSome, 8))
}

func TestRuleFromModel(t *testing.T) {
	t.Run("whole day recurring date", func(t *testing.T) {
		rule, err := RuleFromModel(models.ExceptionRule{
			Kind:      models.RuleKindWholeDay,
			Date:      strPtr("2024-03-10"),
			Recurring: true,
		})
		require.NoError(t, err)

		wd, ok := rule.(BlockWholeDay)
		require.True(t, ok)
		assert.True(t, wd.Match.Recurring)
		assert.Equal(t, time.March, wd.Match.Date.Month())
	})

	t.Run("time range on last friday", func(t *testing.T) {
		rule, err := RuleFromModel(models.ExceptionRule{
			Kind:        models.RuleKindTimeRange,
			Weekday:     intPtr(5),
			WeekOfMonth: models.WeekOfMonthLast,
			StartMinute: 600,
			EndMinute:   660,
		})
		require.NoError(t, err)

		tr, ok := rule.(BlockTimeRange)
		require.True(t, ok)
		assert.Equal(t, time.Friday, *tr.Match.Weekday)
		assert.Equal(t, LastWeek, tr.Match.WeekOfMonth)
		assert.Equal(t, Block{Start: 600, End: 660}, tr.Range)
	})

	t.Run("current week days", func(t *testing.T) {
		rule, err := RuleFromModel(models.ExceptionRule{
			Kind:     models.RuleKindCurrentWeekDays,
			Weekdays: []int{1, 3},
		})
		require.NoError(t, err)
		assert.Equal(t, BlockCurrentWeekDays{Weekdays: []time.Weekday{time.Monday, time.Wednesday}}, rule)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := RuleFromModel(models.ExceptionRule{Kind: models.RuleKindWholeDay})
		assert.Error(t, err)

		_, err = RuleFromModel(models.ExceptionRule{Kind: models.RuleKindTimeRange, Weekday: intPtr(1), StartMinute: 700, EndMinute: 600})
		assert.Error(t, err)

		_, err = RuleFromModel(models.ExceptionRule{Kind: "BLOCK_EVERYTHING"})
		assert.Error(t, err)
	})
}
