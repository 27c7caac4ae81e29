package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2025, time.June, 5, 1, 30, 0, 0, time.UTC) // 22:30 do dia 4 em BRT

	got := StartOfDay(in, loc)
	assert.Equal(t, time.Date(2025, time.June, 4, 0, 0, 0, 0, loc), got)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2025-06-04", "09:30", "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 4, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseDate("04/06/2025", "UTC")
	assert.Error(t, err)
}
