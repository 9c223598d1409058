package jobstoreapi

import (
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/moratsam/jobprogress/jobstore"
	"github.com/moratsam/jobprogress/jobstoreapi/proto"
)

var _ proto.JobRegistryServer = (*JobStoreServer)(nil)

// JobStoreServer provides a gRPC layer for accessing a job store.
type JobStoreServer struct {
	s jobstore.JobStore
}

// NewJobStoreServer returns a new server instance that uses the provided
// job store as its backing store.
func NewJobStoreServer(s jobstore.JobStore) *JobStoreServer {
	return &JobStoreServer{s: s}
}

func (s *JobStoreServer) FindJob(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	key, err := jobstore.ParseKey(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}

	job, err := s.s.FindJob(key)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeJob(job)
}

func (s *JobStoreServer) UpsertJob(_ context.Context, req *structpb.Struct) (*empty.Empty, error) {
	job, err := decodeJob(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err = s.s.UpsertJob(job); err != nil {
		return nil, toStatus(err)
	}
	return new(empty.Empty), nil
}

func (s *JobStoreServer) RemoveFinishedBefore(_ context.Context, req *timestamppb.Timestamp) (*wrapperspb.UInt64Value, error) {
	if err := req.CheckValid(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	removed, err := s.s.RemoveFinishedBefore(req.AsTime())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.UInt64(removed), nil
}

// toStatus maps job store errors to gRPC status codes so that clients can
// reconstruct them.
func toStatus(err error) error {
	var code codes.Code
	switch {
	case xerrors.Is(err, jobstore.ErrUnknownJob):
		code = codes.NotFound
	case xerrors.Is(err, jobstore.ErrInvalidKey), xerrors.Is(err, jobstore.ErrInvalidProgress):
		code = codes.InvalidArgument
	case xerrors.Is(err, jobstore.ErrJobFinished):
		code = codes.FailedPrecondition
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
