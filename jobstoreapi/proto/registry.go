// Package proto declares the JobRegistry gRPC service. Requests and
// responses are protobuf well-known types, so the service descriptor is
// maintained by hand instead of being generated from a .proto file.
package proto

import (
	"context"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "proto.JobRegistry"

// JobRegistryClient is the client API for the JobRegistry service.
type JobRegistryClient interface {
	FindJob(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpsertJob(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*empty.Empty, error)
	RemoveFinishedBefore(ctx context.Context, in *timestamppb.Timestamp, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
}

type jobRegistryClient struct {
	cc grpc.ClientConnInterface
}

// NewJobRegistryClient returns a JobRegistryClient that issues calls over cc.
func NewJobRegistryClient(cc grpc.ClientConnInterface) JobRegistryClient {
	return &jobRegistryClient{cc}
}

func (c *jobRegistryClient) FindJob(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/FindJob", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobRegistryClient) UpsertJob(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*empty.Empty, error) {
	out := new(empty.Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/UpsertJob", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *jobRegistryClient) RemoveFinishedBefore(ctx context.Context, in *timestamppb.Timestamp, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/RemoveFinishedBefore", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// JobRegistryServer is the server API for the JobRegistry service.
type JobRegistryServer interface {
	FindJob(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	UpsertJob(context.Context, *structpb.Struct) (*empty.Empty, error)
	RemoveFinishedBefore(context.Context, *timestamppb.Timestamp) (*wrapperspb.UInt64Value, error)
}

// UnimplementedJobRegistryServer can be embedded to have forward
// compatible implementations.
type UnimplementedJobRegistryServer struct{}

func (UnimplementedJobRegistryServer) FindJob(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method FindJob not implemented")
}

func (UnimplementedJobRegistryServer) UpsertJob(context.Context, *structpb.Struct) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpsertJob not implemented")
}

func (UnimplementedJobRegistryServer) RemoveFinishedBefore(context.Context, *timestamppb.Timestamp) (*wrapperspb.UInt64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RemoveFinishedBefore not implemented")
}

// RegisterJobRegistryServer registers srv with s.
func RegisterJobRegistryServer(s *grpc.Server, srv JobRegistryServer) {
	s.RegisterService(&jobRegistryServiceDesc, srv)
}

func findJobHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobRegistryServer).FindJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/FindJob"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobRegistryServer).FindJob(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func upsertJobHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobRegistryServer).UpsertJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/UpsertJob"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobRegistryServer).UpsertJob(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func removeFinishedBeforeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(timestamppb.Timestamp)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(JobRegistryServer).RemoveFinishedBefore(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/RemoveFinishedBefore"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(JobRegistryServer).RemoveFinishedBefore(ctx, req.(*timestamppb.Timestamp))
	}
	return interceptor(ctx, in, info, handler)
}

var jobRegistryServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*JobRegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindJob", Handler: findJobHandler},
		{MethodName: "UpsertJob", Handler: upsertJobHandler},
		{MethodName: "RemoveFinishedBefore", Handler: removeFinishedBeforeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jobstoreapi/proto/registry.go",
}
