package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScheduleAccepts(t *testing.T) {
	for _, expr := range []string{
		"0 8 * * *",
		"*/5 * * * *",
		"30 6 * * 1-5",
		"0 0 1 1 *",
		"  0 8 * * *  ",
	} {
		schedule, err := ValidateSchedule(expr)
		require.NoError(t, err, "expression %q", expr)
		require.NotNil(t, schedule)
	}
}

func TestValidateScheduleRejects(t *testing.T) {
	for _, expr := range []string{
		"",
		"not a cron",
		"0 8 * *",          // four fields
		"0 0 8 * * *",      // six fields
		"@hourly",          // descriptor shortcut
		"@every 5m",        // descriptor shortcut
		"61 8 * * *",       // minute out of range
		"0 25 * * *",       // hour out of range
		"every day at 8am", // natural language
	} {
		_, err := ValidateSchedule(expr)
		require.Error(t, err, "expression %q", expr)
		assert.Equal(t,
			"Schedule must be in standard 5-part cron format (e.g., '0 8 * * *').",
			err.Error())
	}
}

func TestValidateScheduleNextFire(t *testing.T) {
	schedule, err := ValidateSchedule("0 8 * * *")
	require.NoError(t, err)

	from := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	next := schedule.Next(from)
	assert.Equal(t, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), next)

	after := schedule.Next(next)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), after)
}

func TestJobIDStableForTitle(t *testing.T) {
	a := JobID("Daily Report")
	b := JobID("Daily Report")
	c := JobID("Weekly Report")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}
