package jobstoreapi

import (
	"context"
	"strings"
	"time"

	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/moratsam/jobprogress/jobstore"
	"github.com/moratsam/jobprogress/jobstoreapi/proto"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/moratsam/jobprogress/jobstoreapi/proto JobRegistryClient

// Compile-time check for ensuring JobStoreClient implements JobStore.
var _ jobstore.JobStore = (*JobStoreClient)(nil)

// JobStoreClient provides an API compatible with the jobstore.JobStore
// interface for interacting with job store instances exposed by a remote
// gRPC server.
type JobStoreClient struct {
	ctx context.Context
	cli proto.JobRegistryClient
}

// NewJobStoreClient returns a new client instance that implements the
// jobstore.JobStore interface by delegating methods to a job store
// exposed by a remote gRPC server.
func NewJobStoreClient(ctx context.Context, rpcClient proto.JobRegistryClient) *JobStoreClient {
	return &JobStoreClient{ctx: ctx, cli: rpcClient}
}

func (c *JobStoreClient) UpsertJob(job *jobstore.Job) error {
	req, err := encodeJob(job)
	if err != nil {
		return xerrors.Errorf("upsert job: %w", err)
	}
	if _, err = c.cli.UpsertJob(c.ctx, req); err != nil {
		return xerrors.Errorf("upsert job %s: %w", job.Key, fromStatus(err))
	}
	return nil
}

func (c *JobStoreClient) FindJob(key jobstore.Key) (*jobstore.Job, error) {
	res, err := c.cli.FindJob(c.ctx, wrapperspb.String(string(key)))
	if err != nil {
		return nil, xerrors.Errorf("find job %s: %w", key, fromStatus(err))
	}
	return decodeJob(res)
}

func (c *JobStoreClient) RemoveFinishedBefore(t time.Time) (uint64, error) {
	res, err := c.cli.RemoveFinishedBefore(c.ctx, timestamppb.New(t))
	if err != nil {
		return 0, xerrors.Errorf("remove finished jobs: %w", fromStatus(err))
	}
	return res.GetValue(), nil
}

// fromStatus maps gRPC status codes returned by the server back to the
// job store sentinel errors.
func fromStatus(err error) error {
	msg := status.Convert(err).Message()
	switch status.Code(err) {
	case codes.NotFound:
		return xerrors.Errorf("%s: %w", msg, jobstore.ErrUnknownJob)
	case codes.FailedPrecondition:
		return xerrors.Errorf("%s: %w", msg, jobstore.ErrJobFinished)
	case codes.InvalidArgument:
		if strings.Contains(msg, jobstore.ErrInvalidProgress.Error()) {
			return xerrors.Errorf("%s: %w", msg, jobstore.ErrInvalidProgress)
		}
		return xerrors.Errorf("%s: %w", msg, jobstore.ErrInvalidKey)
	default:
		return err
	}
}
