// Package scheduler persists recurring report jobs and fires them on a
// cron timeline. Job identity is derived from the title, so scheduling
// the same title twice replaces the earlier job instead of stacking a
// duplicate.
package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// jobNamespace seeds the title-derived job IDs. Fixed so the same title
// always maps to the same ID across restarts.
var jobNamespace = uuid.MustParse("8f3c5f8a-3f6e-4d6b-9a2e-1b7c9d4e5f60")

// Job is a persisted scheduled report.
type Job struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Prompt     string    `json:"prompt"`
	Schedule   string    `json:"schedule"`
	Recipients []string  `json:"recipients"`
	CreatedAt  time.Time `json:"created_at"`
	NextRun    time.Time `json:"next_run,omitzero"`
}

// JobID derives the stable job ID for a title.
func JobID(title string) string {
	return uuid.NewSHA1(jobNamespace, []byte(title)).String()
}
