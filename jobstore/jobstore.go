package jobstore

import (
	"math"
	"time"

	"golang.org/x/xerrors"
)

// JobStore is implemented by objects that keep track of the jobs
// published by the execution engine.
type JobStore interface {
	// Inserts or updates a job.
	// The description and start time of an existing job are never
	// overwritten. Once a job's end time is set, further updates fail
	// with ErrJobFinished.
	UpsertJob(job *Job) error

	// Looks up a job by its key. It returns ErrUnknownJob if no job is
	// registered under the key.
	FindJob(key Key) (*Job, error)

	// Removes every finished job whose end time is before t and returns
	// the number of removed jobs. Running jobs are never removed.
	RemoveFinishedBefore(t time.Time) (uint64, error)
}

// Job encapsulates the state of an asynchronous unit of work as
// published by the execution engine.
type Job struct {
	// The key the job is registered under.
	Key Key

	// Human-readable description. Set on creation.
	Description string

	// Completion ratio in [0, 1].
	Progress float64

	// Time when the job got registered.
	StartTime time.Time

	// Time when the job finished. The zero value means that the job
	// is still running.
	EndTime time.Time
}

// Done returns true if the job has an end time.
func (j *Job) Done() bool { return !j.EndTime.IsZero() }

// ProgressFraction returns the completion ratio last published for the job.
func (j *Job) ProgressFraction() float64 { return j.Progress }

// Validate checks that the job can be stored.
func (j *Job) Validate() error {
	if _, err := ParseKey(string(j.Key)); err != nil {
		return err
	}
	if math.IsNaN(j.Progress) || j.Progress < 0 || j.Progress > 1 {
		return xerrors.Errorf("job %s: %w: %v", j.Key, ErrInvalidProgress, j.Progress)
	}
	return nil
}
