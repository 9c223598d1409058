package jobstore

import (
	"context"
	"testing"
	"time"

	gc "gopkg.in/check.v1"

	"github.com/moratsam/jobprogress/jobstore/memory"
)

var _ = gc.Suite(new(JobStoreServiceTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type JobStoreServiceTestSuite struct{}

func (s *JobStoreServiceTestSuite) TestConfigValidation(c *gc.C) {
	cfg := Config{JobStore: memory.NewInMemoryJobStore(), ListenAddr: ":0"}
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.Logger, gc.Not(gc.IsNil), gc.Commentf("default logger was not assigned"))

	cfg = Config{ListenAddr: ":0"}
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*job store has not been provided.*")

	cfg = Config{JobStore: memory.NewInMemoryJobStore()}
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*listen address has not been specified.*")
}

func (s *JobStoreServiceTestSuite) TestRunStopsOnCancel(c *gc.C) {
	svc, err := NewService(Config{JobStore: memory.NewInMemoryJobStore(), ListenAddr: "127.0.0.1:0"})
	c.Assert(err, gc.IsNil)

	ctx, cancelFn := context.WithTimeout(context.TODO(), 100*time.Millisecond)
	defer cancelFn()
	c.Assert(svc.Run(ctx), gc.IsNil)
}
