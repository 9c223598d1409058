package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(GroupTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type GroupTestSuite struct{}

func (s *GroupTestSuite) TestCancelStopsAllServices(c *gc.C) {
	svc1, svc2 := &fakeService{name: "svc1"}, &fakeService{name: "svc2"}
	ctx, cancelFn := context.WithTimeout(context.TODO(), 100*time.Millisecond)
	defer cancelFn()

	err := Group{svc1, svc2}.Run(ctx)
	c.Assert(err, gc.IsNil)
}

func (s *GroupTestSuite) TestFailingServiceCancelsGroup(c *gc.C) {
	svc1 := &fakeService{name: "svc1"}
	svc2 := &fakeService{name: "svc2", err: xerrors.New("boom")}

	err := Group{svc1, svc2}.Run(context.TODO())
	c.Assert(err, gc.ErrorMatches, "(?ms).*svc2: boom.*")
}

type fakeService struct {
	name string
	err  error
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return nil
}
