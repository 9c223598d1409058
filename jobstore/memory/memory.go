package memory

import (
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/moratsam/jobprogress/jobstore"
)

// Compile-time check for ensuring InMemoryJobStore implements JobStore.
var _ jobstore.JobStore = (*InMemoryJobStore)(nil)

// InMemoryJobStore implements an in-memory job store that can be concurrently
// accessed by the execution engine and by any number of progress readers.
type InMemoryJobStore struct {
	mu sync.RWMutex

	// [<job key>] --> Job
	jobs map[jobstore.Key]*jobstore.Job
}

// NewInMemoryJobStore returns an in-memory implementation of the job store.
func NewInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		jobs: make(map[jobstore.Key]*jobstore.Job),
	}
}

// Inserts or updates a job.
func (s *InMemoryJobStore) UpsertJob(job *jobstore.Job) error {
	if err := job.Validate(); err != nil {
		return xerrors.Errorf("upsert job: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.jobs[job.Key]
	if existing == nil {
		// Store a copy so that callers cannot mutate the job behind our back.
		jCopy := new(jobstore.Job)
		*jCopy = *job
		s.jobs[jCopy.Key] = jCopy
		return nil
	}

	if existing.Done() {
		return xerrors.Errorf("upsert job %s: %w", job.Key, jobstore.ErrJobFinished)
	}

	// Description and start time are immutable.
	existing.Progress = job.Progress
	existing.EndTime = job.EndTime
	return nil
}

// Looks up a job by its key.
func (s *InMemoryJobStore) FindJob(key jobstore.Key) (*jobstore.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job := s.jobs[key]
	if job == nil {
		return nil, xerrors.Errorf("find job %s: %w", key, jobstore.ErrUnknownJob)
	}

	// The job contents may be overwritten by an upsert; hand out a snapshot.
	jCopy := new(jobstore.Job)
	*jCopy = *job
	return jCopy, nil
}

// Removes every finished job whose end time is before t.
func (s *InMemoryJobStore) RemoveFinishedBefore(t time.Time) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed uint64
	for key, job := range s.jobs {
		if job.Done() && job.EndTime.Before(t) {
			delete(s.jobs, key)
			removed++
		}
	}
	return removed, nil
}
