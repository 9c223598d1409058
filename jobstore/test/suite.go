package test

import (
	"fmt"
	"sync"
	"time"

	gc "gopkg.in/check.v1"

	"github.com/moratsam/jobprogress/jobstore"
)

// SuiteBase defines a re-usable set of job store related tests that can be
// executed against any type that implements jobstore.JobStore.
type SuiteBase struct {
	s jobstore.JobStore
}

func (s *SuiteBase) SetJobStore(store jobstore.JobStore) {
	s.s = store
}

func (s *SuiteBase) TestUpsertAndFindJob(c *gc.C) {
	startedAt := now()
	original := &jobstore.Job{
		Key:         jobstore.NewKey(),
		Description: "Sort",
		Progress:    0.25,
		StartTime:   startedAt,
	}

	err := s.s.UpsertJob(original)
	c.Assert(err, gc.IsNil)

	job, err := s.s.FindJob(original.Key)
	c.Assert(err, gc.IsNil)
	c.Assert(job.Key, gc.Equals, original.Key)
	c.Assert(job.Description, gc.Equals, "Sort")
	c.Assert(job.ProgressFraction(), gc.Equals, 0.25)
	c.Assert(job.StartTime.Equal(startedAt), gc.Equals, true, gc.Commentf("start time mismatch: %v", job.StartTime))
	c.Assert(job.Done(), gc.Equals, false)

	// Mutating the returned job must not affect the stored job.
	job.Progress = 0.9
	job, err = s.s.FindJob(original.Key)
	c.Assert(err, gc.IsNil)
	c.Assert(job.ProgressFraction(), gc.Equals, 0.25)
}

func (s *SuiteBase) TestUpdateKeepsImmutableFields(c *gc.C) {
	startedAt := now()
	key := jobstore.NewKey()
	err := s.s.UpsertJob(&jobstore.Job{Key: key, Description: "Sort", StartTime: startedAt})
	c.Assert(err, gc.IsNil)

	err = s.s.UpsertJob(&jobstore.Job{
		Key:         key,
		Description: "Not sort",
		Progress:    0.5,
		StartTime:   startedAt.Add(time.Hour),
	})
	c.Assert(err, gc.IsNil)

	job, err := s.s.FindJob(key)
	c.Assert(err, gc.IsNil)
	c.Assert(job.Description, gc.Equals, "Sort")
	c.Assert(job.StartTime.Equal(startedAt), gc.Equals, true)
	c.Assert(job.ProgressFraction(), gc.Equals, 0.5)
}

func (s *SuiteBase) TestFinishedJobIsFrozen(c *gc.C) {
	key := jobstore.NewKey()
	endedAt := now()
	err := s.s.UpsertJob(&jobstore.Job{Key: key, Description: "Sort", StartTime: endedAt.Add(-time.Minute)})
	c.Assert(err, gc.IsNil)

	err = s.s.UpsertJob(&jobstore.Job{Key: key, Progress: 1, EndTime: endedAt})
	c.Assert(err, gc.IsNil)

	// Attempt to move the job back to the running state.
	err = s.s.UpsertJob(&jobstore.Job{Key: key, Progress: 0.5})
	c.Assert(err, gc.ErrorMatches, ".*job already finished.*")

	job, err := s.s.FindJob(key)
	c.Assert(err, gc.IsNil)
	c.Assert(job.Done(), gc.Equals, true)
	c.Assert(job.EndTime.Equal(endedAt), gc.Equals, true)
	c.Assert(job.ProgressFraction(), gc.Equals, 1.0)
}

func (s *SuiteBase) TestFindUnknownJob(c *gc.C) {
	_, err := s.s.FindJob(jobstore.NewKey())
	c.Assert(err, gc.ErrorMatches, ".*unknown job.*")
}

func (s *SuiteBase) TestUpsertInvalidJob(c *gc.C) {
	err := s.s.UpsertJob(&jobstore.Job{Key: "has whitespace"})
	c.Assert(err, gc.ErrorMatches, ".*invalid key.*")

	err = s.s.UpsertJob(&jobstore.Job{Key: jobstore.NewKey(), Progress: 1.5})
	c.Assert(err, gc.ErrorMatches, ".*invalid progress fraction.*")

	err = s.s.UpsertJob(&jobstore.Job{Key: jobstore.NewKey(), Progress: -0.1})
	c.Assert(err, gc.ErrorMatches, ".*invalid progress fraction.*")
}

func (s *SuiteBase) TestRemoveFinishedBefore(c *gc.C) {
	cutoff := now()
	var (
		running     = &jobstore.Job{Key: jobstore.NewKey(), StartTime: cutoff.Add(-time.Hour)}
		oldFinished = &jobstore.Job{Key: jobstore.NewKey(), StartTime: cutoff.Add(-time.Hour), EndTime: cutoff.Add(-time.Minute), Progress: 1}
		newFinished = &jobstore.Job{Key: jobstore.NewKey(), StartTime: cutoff.Add(-time.Hour), EndTime: cutoff.Add(time.Minute), Progress: 1}
	)
	for _, job := range []*jobstore.Job{running, oldFinished, newFinished} {
		c.Assert(s.s.UpsertJob(job), gc.IsNil)
	}

	removed, err := s.s.RemoveFinishedBefore(cutoff)
	c.Assert(err, gc.IsNil)
	c.Assert(removed, gc.Equals, uint64(1))

	_, err = s.s.FindJob(oldFinished.Key)
	c.Assert(err, gc.ErrorMatches, ".*unknown job.*")
	_, err = s.s.FindJob(running.Key)
	c.Assert(err, gc.IsNil)
	_, err = s.s.FindJob(newFinished.Key)
	c.Assert(err, gc.IsNil)
}

func (s *SuiteBase) TestConcurrentReadsSeeConsistentSnapshots(c *gc.C) {
	key := jobstore.NewKey()
	c.Assert(s.s.UpsertJob(&jobstore.Job{Key: key, Description: "Sort", StartTime: now()}), gc.IsNil)

	var wg sync.WaitGroup
	errCh := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0.0
			for j := 0; j < 50; j++ {
				job, err := s.s.FindJob(key)
				if err != nil {
					errCh <- err
					return
				}
				if job.Description != "Sort" || job.Progress < last {
					errCh <- fmt.Errorf("inconsistent snapshot: %+v", job)
					return
				}
				last = job.Progress
			}
		}()
	}

	for i := 1; i <= 50; i++ {
		err := s.s.UpsertJob(&jobstore.Job{Key: key, Progress: float64(i) / 100})
		c.Assert(err, gc.IsNil)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		c.Fatal(err)
	}
}

// Stores with a coarse time resolution would otherwise make Equal checks flaky.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
