package jobstoreapi_test

import (
	"context"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/golang/protobuf/ptypes/empty"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
	gc "gopkg.in/check.v1"

	"github.com/moratsam/jobprogress/jobstore"
	jsapi "github.com/moratsam/jobprogress/jobstoreapi"
	"github.com/moratsam/jobprogress/jobstoreapi/mocks"
)

var _ = gc.Suite(new(ClientTestSuite))

type ClientTestSuite struct{}

func (s *ClientTestSuite) TestFindJob(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	rpcCli := mocks.NewMockJobRegistryClient(ctrl)

	res, err := structpb.NewStruct(map[string]interface{}{
		"key":         "job_1",
		"description": "Sort",
		"progress":    0.5,
		"start_time":  "2022-02-01T10:00:00Z",
		"end_time":    "",
	})
	c.Assert(err, gc.IsNil)

	rpcCli.EXPECT().FindJob(
		gomock.AssignableToTypeOf(context.TODO()),
		gomock.Any(),
	).DoAndReturn(func(_ context.Context, req *wrapperspb.StringValue, _ ...interface{}) (*structpb.Struct, error) {
		c.Assert(req.GetValue(), gc.Equals, "job_1")
		return res, nil
	})

	cli := jsapi.NewJobStoreClient(context.TODO(), rpcCli)
	job, err := cli.FindJob("job_1")
	c.Assert(err, gc.IsNil)
	c.Assert(job, gc.DeepEquals, &jobstore.Job{
		Key:         "job_1",
		Description: "Sort",
		Progress:    0.5,
		StartTime:   time.Date(2022, 2, 1, 10, 0, 0, 0, time.UTC),
	})
}

func (s *ClientTestSuite) TestStatusCodesMapToSentinels(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	rpcCli := mocks.NewMockJobRegistryClient(ctrl)

	gomock.InOrder(
		rpcCli.EXPECT().FindJob(gomock.Any(), gomock.Any()).Return(nil, status.Error(codes.NotFound, "unknown job")),
		rpcCli.EXPECT().FindJob(gomock.Any(), gomock.Any()).Return(nil, status.Error(codes.InvalidArgument, "invalid key")),
		rpcCli.EXPECT().FindJob(gomock.Any(), gomock.Any()).Return(nil, status.Error(codes.Unavailable, "connection refused")),
	)

	cli := jsapi.NewJobStoreClient(context.TODO(), rpcCli)
	_, err := cli.FindJob("job_1")
	c.Assert(xerrors.Is(err, jobstore.ErrUnknownJob), gc.Equals, true)

	_, err = cli.FindJob("job_1")
	c.Assert(xerrors.Is(err, jobstore.ErrInvalidKey), gc.Equals, true)

	_, err = cli.FindJob("job_1")
	c.Assert(xerrors.Is(err, jobstore.ErrUnknownJob), gc.Equals, false)
	c.Assert(status.Code(xerrors.Unwrap(err)), gc.Equals, codes.Unavailable)
}

func (s *ClientTestSuite) TestUpsertFinishedJob(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	rpcCli := mocks.NewMockJobRegistryClient(ctrl)

	rpcCli.EXPECT().UpsertJob(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *structpb.Struct, _ ...interface{}) (*empty.Empty, error) {
			c.Assert(req.GetFields()["end_time"].GetStringValue(), gc.Equals, "2022-02-01T10:05:00Z")
			return nil, status.Error(codes.FailedPrecondition, "job already finished")
		},
	)

	cli := jsapi.NewJobStoreClient(context.TODO(), rpcCli)
	err := cli.UpsertJob(&jobstore.Job{
		Key:      "job_1",
		Progress: 1,
		EndTime:  time.Date(2022, 2, 1, 10, 5, 0, 0, time.UTC),
	})
	c.Assert(xerrors.Is(err, jobstore.ErrJobFinished), gc.Equals, true)
}

func (s *ClientTestSuite) TestRemoveFinishedBefore(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	rpcCli := mocks.NewMockJobRegistryClient(ctrl)

	cutoff := time.Date(2022, 2, 1, 10, 0, 0, 0, time.UTC)
	rpcCli.EXPECT().RemoveFinishedBefore(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *timestamppb.Timestamp, _ ...interface{}) (*wrapperspb.UInt64Value, error) {
			c.Assert(req.AsTime().Equal(cutoff), gc.Equals, true)
			return wrapperspb.UInt64(3), nil
		},
	)

	cli := jsapi.NewJobStoreClient(context.TODO(), rpcCli)
	removed, err := cli.RemoveFinishedBefore(cutoff)
	c.Assert(err, gc.IsNil)
	c.Assert(removed, gc.Equals, uint64(3))
}
