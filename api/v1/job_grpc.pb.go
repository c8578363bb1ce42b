// Code generated from job.proto in the layout of protoc-gen-go-grpc.
// source: api/v1/job.proto

package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	JobService_SubmitJob_FullMethodName    = "/job.v1.JobService/SubmitJob"
	JobService_QueryJob_FullMethodName     = "/job.v1.JobService/QueryJob"
	JobService_ListJobs_FullMethodName     = "/job.v1.JobService/ListJobs"
	JobService_SweepExpired_FullMethodName = "/job.v1.JobService/SweepExpired"
	JobService_WatchJobs_FullMethodName    = "/job.v1.JobService/WatchJobs"
)

// JobServiceClient is the client API for JobService.
type JobServiceClient interface {
	SubmitJob(ctx context.Context, in *SubmitJobRequest, opts ...grpc.CallOption) (*SubmitJobResponse, error)
	QueryJob(ctx context.Context, in *QueryJobRequest, opts ...grpc.CallOption) (*QueryJobResponse, error)
	ListJobs(ctx context.Context, in *ListJobsRequest, opts ...grpc.CallOption) (*ListJobsResponse, error)
	SweepExpired(ctx context.Context, in *SweepExpiredRequest, opts ...grpc.CallOption) (*SweepExpiredResponse, error)
	WatchJobs(ctx context.Context, in *WatchJobsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[JobUpdate], error)
}

type jobServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewJobServiceClient(cc grpc.ClientConnInterface) JobServiceClient {
	return &jobServiceClient{cc}
}

func (c *jobServiceClient) SubmitJob(ctx context.Context, in *SubmitJobRequest, opts ...grpc.CallOption) (*SubmitJobResponse, error) {
	out := new(SubmitJobResponse)
	if err := c.cc.Invoke(ctx, JobService_SubmitJob_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *jobServiceClient) QueryJob(ctx context.Context, in *QueryJobRequest, opts ...grpc.CallOption) (*QueryJobResponse, error) {
	out := new(QueryJobResponse)
	if err := c.cc.Invoke(ctx, JobService_QueryJob_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *jobServiceClient) ListJobs(ctx context.Context, in *ListJobsRequest, opts ...grpc.CallOption) (*ListJobsResponse, error) {
	out := new(ListJobsResponse)
	if err := c.cc.Invoke(ctx, JobService_ListJobs_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *jobServiceClient) SweepExpired(ctx context.Context, in *SweepExpiredRequest, opts ...grpc.CallOption) (*SweepExpiredResponse, error) {
	out := new(SweepExpiredResponse)
	if err := c.cc.Invoke(ctx, JobService_SweepExpired_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *jobServiceClient) WatchJobs(ctx context.Context, in *WatchJobsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[JobUpdate], error) {
	stream, err := c.cc.NewStream(ctx, &JobService_ServiceDesc.Streams[0], JobService_WatchJobs_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}

	x := &grpc.GenericClientStream[WatchJobsRequest, JobUpdate]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}

	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}

	return x, nil
}

type JobService_WatchJobsClient = grpc.ServerStreamingClient[JobUpdate]

// JobServiceServer is the server API for JobService. Implementations must
// embed UnimplementedJobServiceServer.
type JobServiceServer interface {
	SubmitJob(context.Context, *SubmitJobRequest) (*SubmitJobResponse, error)
	QueryJob(context.Context, *QueryJobRequest) (*QueryJobResponse, error)
	ListJobs(context.Context, *ListJobsRequest) (*ListJobsResponse, error)
	SweepExpired(context.Context, *SweepExpiredRequest) (*SweepExpiredResponse, error)
	WatchJobs(*WatchJobsRequest, grpc.ServerStreamingServer[JobUpdate]) error
	mustEmbedUnimplementedJobServiceServer()
}

// UnimplementedJobServiceServer must be embedded by value.
type UnimplementedJobServiceServer struct{}

func (UnimplementedJobServiceServer) SubmitJob(context.Context, *SubmitJobRequest) (*SubmitJobResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitJob not implemented")
}

func (UnimplementedJobServiceServer) QueryJob(context.Context, *QueryJobRequest) (*QueryJobResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method QueryJob not implemented")
}

func (UnimplementedJobServiceServer) ListJobs(context.Context, *ListJobsRequest) (*ListJobsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListJobs not implemented")
}

func (UnimplementedJobServiceServer) SweepExpired(context.Context, *SweepExpiredRequest) (*SweepExpiredResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SweepExpired not implemented")
}

func (UnimplementedJobServiceServer) WatchJobs(*WatchJobsRequest, grpc.ServerStreamingServer[JobUpdate]) error {
	return status.Errorf(codes.Unimplemented, "method WatchJobs not implemented")
}

func (UnimplementedJobServiceServer) mustEmbedUnimplementedJobServiceServer() {}
func (UnimplementedJobServiceServer) testEmbeddedByValue()                    {}

func RegisterJobServiceServer(s grpc.ServiceRegistrar, srv JobServiceServer) {
	// Panics at registration rather than at call time if the embedded
	// Unimplemented struct is a nil pointer.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}

	s.RegisterService(&JobService_ServiceDesc, srv)
}

func _JobService_SubmitJob_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(JobServiceServer).SubmitJob(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: JobService_SubmitJob_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobServiceServer).SubmitJob(ctx, req.(*SubmitJobRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func _JobService_QueryJob_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(QueryJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(JobServiceServer).QueryJob(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: JobService_QueryJob_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobServiceServer).QueryJob(ctx, req.(*QueryJobRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func _JobService_ListJobs_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListJobsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(JobServiceServer).ListJobs(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: JobService_ListJobs_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobServiceServer).ListJobs(ctx, req.(*ListJobsRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func _JobService_SweepExpired_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SweepExpiredRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(JobServiceServer).SweepExpired(ctx, in)
	}

	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: JobService_SweepExpired_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(JobServiceServer).SweepExpired(ctx, req.(*SweepExpiredRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func _JobService_WatchJobs_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchJobsRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}

	return srv.(JobServiceServer).WatchJobs(m, &grpc.GenericServerStream[WatchJobsRequest, JobUpdate]{ServerStream: stream})
}

type JobService_WatchJobsServer = grpc.ServerStreamingServer[JobUpdate]

// JobService_ServiceDesc is the grpc.ServiceDesc for JobService.
var JobService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "job.v1.JobService",
	HandlerType: (*JobServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitJob",
			Handler:    _JobService_SubmitJob_Handler,
		},
		{
			MethodName: "QueryJob",
			Handler:    _JobService_QueryJob_Handler,
		},
		{
			MethodName: "ListJobs",
			Handler:    _JobService_ListJobs_Handler,
		},
		{
			MethodName: "SweepExpired",
			Handler:    _JobService_SweepExpired_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchJobs",
			Handler:       _JobService_WatchJobs_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "api/v1/job.proto",
}
