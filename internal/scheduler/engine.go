package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nebulus/blackbox/internal/logger"
)

// Runner executes a due job. The report pipeline implements this; tests
// substitute their own.
type Runner interface {
	Run(ctx context.Context, job Job)
}

// entry is a pending fire on the timeline. gen guards against stale
// entries left behind by a reschedule or delete; an entry whose gen no
// longer matches the job's current generation is discarded on pop.
type entry struct {
	at  time.Time
	id  string
	gen uint64
}

type timeline []entry

func (t timeline) Len() int            { return len(t) }
func (t timeline) Less(i, j int) bool  { return t[i].at.Before(t[j].at) }
func (t timeline) Swap(i, j int)       { t[i], t[j] = t[j], t[i] }
func (t *timeline) Push(x interface{}) { *t = append(*t, x.(entry)) }
func (t *timeline) Pop() interface{} {
	old := *t
	n := len(old)
	x := old[n-1]
	*t = old[:n-1]
	return x
}

// Engine owns the fire timeline. A single goroutine sleeps until the
// earliest pending fire; each due job is dispatched on its own
// goroutine so a slow report never delays the next fire.
type Engine struct {
	store   *Store
	runner  Runner
	log     *logger.Logger
	metrics *Metrics
	now     func() time.Time

	mu        sync.Mutex
	timeline  timeline
	schedules map[string]cron.Schedule
	gens      map[string]uint64

	wake   chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an Engine over the given store and runner.
func NewEngine(store *Store, runner Runner, log *logger.Logger, metrics *Metrics) *Engine {
	return &Engine{
		store:     store,
		runner:    runner,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
		schedules: make(map[string]cron.Schedule),
		gens:      make(map[string]uint64),
		wake:      make(chan struct{}, 1),
	}
}

// Start loads persisted jobs onto the timeline and begins firing.
// Jobs whose stored schedule no longer validates are skipped with a
// warning rather than blocking startup.
func (e *Engine) Start(ctx context.Context) error {
	jobs, err := e.store.List()
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}

	e.mu.Lock()
	for _, job := range jobs {
		schedule, err := ValidateSchedule(job.Schedule)
		if err != nil {
			e.log.Warn("skipping job with invalid schedule",
				logger.Field{Key: "job_id", Value: job.ID},
				logger.Field{Key: "schedule", Value: job.Schedule})
			continue
		}
		e.schedules[job.ID] = schedule
		e.gens[job.ID]++
		heap.Push(&e.timeline, entry{
			at:  schedule.Next(e.now()),
			id:  job.ID,
			gen: e.gens[job.ID],
		})
	}
	count := len(e.schedules)
	e.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.wg.Add(1)
	go e.loop(runCtx)

	e.log.Info("scheduler started", logger.Field{Key: "jobs", Value: count})
	return nil
}

// Stop halts the timeline and waits for in-flight dispatches.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()
	e.log.Info("scheduler stopped")
}

// Schedule validates and persists a job, replacing any existing job
// with the same title, and returns the confirmation text.
func (e *Engine) Schedule(title, prompt, scheduleExpr string, recipients []string) (Job, string, error) {
	if strings.TrimSpace(title) == "" {
		return Job{}, "", fmt.Errorf("title is required")
	}
	if strings.TrimSpace(prompt) == "" {
		return Job{}, "", fmt.Errorf("prompt is required")
	}
	schedule, err := ValidateSchedule(scheduleExpr)
	if err != nil {
		return Job{}, "", err
	}

	var cleaned []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	recipients = cleaned

	job := Job{
		ID:         JobID(title),
		Title:      title,
		Prompt:     prompt,
		Schedule:   strings.TrimSpace(scheduleExpr),
		Recipients: recipients,
		CreatedAt:  e.now().UTC(),
	}
	if err := e.store.Put(job); err != nil {
		return Job{}, "", err
	}

	e.mu.Lock()
	e.schedules[job.ID] = schedule
	e.gens[job.ID]++
	next := schedule.Next(e.now())
	heap.Push(&e.timeline, entry{at: next, id: job.ID, gen: e.gens[job.ID]})
	e.mu.Unlock()
	e.poke()

	if e.metrics != nil {
		e.metrics.JobsScheduled.Inc()
	}
	e.log.Info("job scheduled",
		logger.Field{Key: "job_id", Value: job.ID},
		logger.Field{Key: "title", Value: job.Title},
		logger.Field{Key: "next_run", Value: next})

	job.NextRun = next
	message := fmt.Sprintf("Task '%s' scheduled successfully (Job ID: %s).", job.Title, job.ID)
	return job, message, nil
}

// Jobs lists all persisted jobs with their next fire times filled in.
func (e *Engine) Jobs() ([]Job, error) {
	jobs, err := e.store.List()
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range jobs {
		if schedule, ok := e.schedules[jobs[i].ID]; ok {
			jobs[i].NextRun = schedule.Next(e.now())
		}
	}
	return jobs, nil
}

// Describe renders the job list as plain text, one job per line.
func (e *Engine) Describe() (string, error) {
	jobs, err := e.Jobs()
	if err != nil {
		return "", err
	}
	if len(jobs) == 0 {
		return "No scheduled tasks found.", nil
	}

	lines := make([]string, 0, len(jobs))
	for _, job := range jobs {
		line := fmt.Sprintf("- %s (ID: %s, schedule: %s", job.Title, job.ID, job.Schedule)
		if !job.NextRun.IsZero() {
			line += fmt.Sprintf(", next run: %s", job.NextRun.Format(time.RFC3339))
		}
		lines = append(lines, line+")")
	}
	return strings.Join(lines, "\n"), nil
}

// Delete removes a job and returns the confirmation text.
func (e *Engine) Delete(id string) (string, error) {
	if err := e.store.Delete(id); err != nil {
		return "", err
	}

	e.mu.Lock()
	delete(e.schedules, id)
	e.gens[id]++ // orphan any timeline entries
	e.mu.Unlock()

	e.log.Info("job deleted", logger.Field{Key: "job_id", Value: id})
	return fmt.Sprintf("Task %s deleted.", id), nil
}

// RunNow dispatches a job immediately, outside its schedule. The run is
// one-shot and does not touch the persisted job or its timeline.
func (e *Engine) RunNow(ctx context.Context, id string) (string, error) {
	job, err := e.store.Get(id)
	if err != nil {
		return "", err
	}

	manual := job
	manual.Title = "Manual Run: " + job.Title
	e.dispatch(ctx, manual)

	e.log.Info("manual run triggered",
		logger.Field{Key: "job_id", Value: job.ID},
		logger.Field{Key: "title", Value: job.Title})
	return fmt.Sprintf("Task '%s' triggered.", job.Title), nil
}

// poke wakes the loop so it re-reads the timeline head.
func (e *Engine) poke() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) loop(ctx context.Context) {
	defer e.wg.Done()

	for {
		e.mu.Lock()
		var wait time.Duration
		if len(e.timeline) == 0 {
			wait = time.Hour
		} else {
			wait = e.timeline[0].at.Sub(e.now())
		}
		e.mu.Unlock()

		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-e.wake:
				timer.Stop()
				continue
			case <-timer.C:
			}
		}

		e.fireDue(ctx)
	}
}

// fireDue pops and dispatches every entry whose time has come, pushing
// the successor fire for each live job.
func (e *Engine) fireDue(ctx context.Context) {
	now := e.now()

	e.mu.Lock()
	var due []string
	for len(e.timeline) > 0 && !e.timeline[0].at.After(now) {
		head := heap.Pop(&e.timeline).(entry)
		if head.gen != e.gens[head.id] {
			continue // rescheduled or deleted since this entry was pushed
		}
		schedule, ok := e.schedules[head.id]
		if !ok {
			continue
		}
		heap.Push(&e.timeline, entry{
			at:  schedule.Next(now),
			id:  head.id,
			gen: head.gen,
		})
		due = append(due, head.id)
	}
	e.mu.Unlock()

	for _, id := range due {
		job, err := e.store.Get(id)
		if err != nil {
			e.log.Error("failed to load due job", err,
				logger.Field{Key: "job_id", Value: id})
			continue
		}
		e.dispatch(ctx, job)
	}
}

func (e *Engine) dispatch(ctx context.Context, job Job) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.runner.Run(ctx, job)
	}()
}
