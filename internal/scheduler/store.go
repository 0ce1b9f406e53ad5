package scheduler

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	prompt     TEXT NOT NULL,
	schedule   TEXT NOT NULL,
	recipients TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// ErrJobNotFound is returned when a job ID has no row.
type ErrJobNotFound struct {
	ID string
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("Job %s not found.", e.ID)
}

// Store persists jobs in SQLite. Every mutation runs in its own
// transaction so a crash never leaves a half-written job behind.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed initializes) the job database at path.
// Use ":memory:" for an ephemeral store in tests.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open job database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize job database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts a job, replacing any existing row with the same ID. The
// original creation time is kept on replacement so listing order is
// stable across reschedules.
func (s *Store) Put(job Job) error {
	recipients, err := json.Marshal(job.Recipients)
	if err != nil {
		return fmt.Errorf("failed to encode recipients: %w", err)
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO jobs (id, title, prompt, schedule, recipients, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			prompt     = excluded.prompt,
			schedule   = excluded.schedule,
			recipients = excluded.recipients`,
		job.ID, job.Title, job.Prompt, job.Schedule, string(recipients), job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	return tx.Commit()
}

// Get loads a single job by ID.
func (s *Store) Get(id string) (Job, error) {
	row := s.db.QueryRow(`
		SELECT id, title, prompt, schedule, recipients, created_at
		FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return Job{}, &ErrJobNotFound{ID: id}
	}
	return job, err
}

// Delete removes a job by ID.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if affected == 0 {
		return &ErrJobNotFound{ID: id}
	}
	return tx.Commit()
}

// List returns all jobs in creation order.
func (s *Store) List() ([]Job, error) {
	rows, err := s.db.Query(`
		SELECT id, title, prompt, schedule, recipients, created_at
		FROM jobs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var recipients string
	err := row.Scan(&job.ID, &job.Title, &job.Prompt, &job.Schedule, &recipients, &job.CreatedAt)
	if err != nil {
		return Job{}, err
	}
	if err := json.Unmarshal([]byte(recipients), &job.Recipients); err != nil {
		return Job{}, fmt.Errorf("failed to decode recipients for job %s: %w", job.ID, err)
	}
	return job, nil
}
