package progress

import (
	"time"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"

	"github.com/moratsam/jobprogress/jobstore"
)

func (s *ResolverTestSuite) TestPageForRunningJob(c *gc.C) {
	key := s.runningJob(c, "Sort", 0.25)

	page, err := s.r.Page(string(key), "result_1")
	c.Assert(err, gc.IsNil)
	c.Assert(page, gc.DeepEquals, Page{
		Title:   "Sort",
		Section: "result_1",
		Percent: 25,
		Found:   true,
	})
}

func (s *ResolverTestSuite) TestPageForFinishedJob(c *gc.C) {
	key := s.finishedJob(c, "Sort")

	page, err := s.r.Page(string(key), "result_1")
	c.Assert(err, gc.IsNil)
	c.Assert(page.Title, gc.Equals, "Sort")
	c.Assert(page.Finished, gc.Equals, true)
	c.Assert(page.Percent, gc.Equals, 100)
}

func (s *ResolverTestSuite) TestPageForAbsentJob(c *gc.C) {
	page, err := s.r.Page("no_such_job", "result_1")
	c.Assert(xerrors.Is(err, ErrNullJobReference), gc.Equals, true)
	c.Assert(page.Found, gc.Equals, false)
	c.Assert(page.Title, gc.Equals, "Job not found")
	c.Assert(page.Section, gc.Matches, ".*no_such_job.*")
}

func (s *ResolverTestSuite) TestPageWithInvalidKeys(c *gc.C) {
	_, err := s.r.Page("job 1", "result_1")
	c.Assert(xerrors.Is(err, ErrInvalidIdentifier), gc.Equals, true)
}

func (s *ResolverTestSuite) TestOutcomeFraction(c *gc.C) {
	job := &jobstore.Job{Key: "job_1", Progress: 0.3}
	c.Assert(Outcome{State: Running, Job: job}.Fraction(), gc.Equals, 0.3)

	job.EndTime = time.Now()
	c.Assert(Outcome{State: Finished, Job: job}.Fraction(), gc.Equals, 1.0)
	c.Assert(Outcome{State: NotFound}.Fraction(), gc.Equals, 0.0)
	c.Assert(NotFound.String(), gc.Equals, "not_found")
}
