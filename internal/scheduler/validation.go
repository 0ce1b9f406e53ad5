package scheduler

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// cronParser accepts standard 5-field expressions only: minute, hour,
// day of month, month, day of week. No seconds field, no @descriptors.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ErrBadSchedule is returned for any expression that is not a valid
// 5-field cron line. The message is part of the text surface contract.
var ErrBadSchedule = fmt.Errorf(
	"Schedule must be in standard 5-part cron format (e.g., '0 8 * * *').")

// ValidateSchedule checks a cron expression and returns the parsed
// schedule. Anything other than five whitespace-separated fields fails,
// including @hourly style shortcuts.
func ValidateSchedule(expr string) (cron.Schedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.HasPrefix(expr, "@") {
		return nil, ErrBadSchedule
	}
	if len(strings.Fields(expr)) != 5 {
		return nil, ErrBadSchedule
	}

	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, ErrBadSchedule
	}
	return schedule, nil
}
