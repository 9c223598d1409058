package progress

import (
	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/jobstore"
)

// Registry is implemented by objects that can resolve a job key to the job
// registered under it. Implementations must return an error wrapping
// jobstore.ErrUnknownJob when no job is registered under the key.
type Registry interface {
	FindJob(key jobstore.Key) (*jobstore.Job, error)
}

// State classifies a job at the time it was looked up.
type State uint8

const (
	// NotFound means that no job is registered under the key; either it
	// never existed or it has been reaped from the registry.
	NotFound State = iota

	// Running means that the job has no end time yet.
	Running

	// Finished means that the job has an end time.
	Finished
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	default:
		return "not_found"
	}
}

// Outcome is the result of a registry lookup.
type Outcome struct {
	State State

	// The key that was looked up.
	Key jobstore.Key

	// A snapshot of the job; nil when State is NotFound.
	Job *jobstore.Job
}

// Fraction returns the completion ratio of a running job and 1 for a
// finished one. Absent jobs report 0.
func (o Outcome) Fraction() float64 {
	switch o.State {
	case Running:
		return o.Job.ProgressFraction()
	case Finished:
		return 1
	default:
		return 0
	}
}

// Lookup resolves rawID to an Outcome. A malformed rawID yields an error
// wrapping ErrInvalidIdentifier; an unknown job is a valid NotFound outcome.
func Lookup(reg Registry, rawID string) (Outcome, error) {
	key, err := jobstore.ParseKey(rawID)
	if err != nil {
		return Outcome{}, xerrors.Errorf("job %q: %w: %v", rawID, ErrInvalidIdentifier, err)
	}
	return lookupKey(reg, key)
}

func lookupKey(reg Registry, key jobstore.Key) (Outcome, error) {
	job, err := reg.FindJob(key)
	if err != nil {
		if xerrors.Is(err, jobstore.ErrUnknownJob) {
			return Outcome{State: NotFound, Key: key}, nil
		}
		return Outcome{}, xerrors.Errorf("job %s: %w: %v", key, ErrRegistryUnavailable, err)
	}

	if job.Done() {
		return Outcome{State: Finished, Key: key, Job: job}, nil
	}
	return Outcome{State: Running, Key: key, Job: job}, nil
}
