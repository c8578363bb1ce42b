package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	api "github.com/nixpig/slideworker/api/v1"
	"github.com/nixpig/slideworker/internal/config"
	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/nixpig/slideworker/internal/tlsconfig"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

type server struct {
	api.UnimplementedJobServiceServer

	manager    *jobmanager.Manager
	logger     *slog.Logger
	cfg        *config.ServerConfig
	grpcServer *grpc.Server
	health     *health.Server
}

func newServer(
	manager *jobmanager.Manager,
	logger *slog.Logger,
	cfg *config.ServerConfig,
) (*server, error) {
	creds, err := loadCreds(cfg)
	if err != nil {
		return nil, fmt.Errorf("load TLS credentials: %w", err)
	}

	s := &server{
		manager: manager,
		logger:  logger,
		cfg:     cfg,
		health:  health.NewServer(),
	}

	s.grpcServer = grpc.NewServer(
		grpc.UnaryInterceptor(contextCheckUnaryInterceptor),
		grpc.StreamInterceptor(contextCheckStreamInterceptor),
		grpc.Creds(creds),
	)

	api.RegisterJobServiceServer(s.grpcServer, s)
	healthpb.RegisterHealthServer(s.grpcServer, s.health)
	reflection.Register(s.grpcServer)

	return s, nil
}

func (s *server) start(listener net.Listener) error {
	s.health.SetServingStatus(
		api.JobService_ServiceDesc.ServiceName,
		healthpb.HealthCheckResponse_SERVING,
	)

	return s.grpcServer.Serve(listener)
}

func (s *server) shutdown() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

func (s *server) SubmitJob(
	ctx context.Context,
	req *api.SubmitJobRequest,
) (*api.SubmitJobResponse, error) {
	jobType, ok := fromAPIJobType(req.Type)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "job type is unspecified")
	}

	if req.Target == "" {
		return nil, status.Error(codes.InvalidArgument, "target is empty")
	}

	id, err := s.manager.Submit(ctx, jobType, req.Target)
	if err != nil {
		return nil, s.mapError("submit job", err)
	}

	return &api.SubmitJobResponse{Id: id}, nil
}

func (s *server) QueryJob(
	ctx context.Context,
	req *api.QueryJobRequest,
) (*api.QueryJobResponse, error) {
	if req.Id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is empty")
	}

	rec, err := s.manager.Query(req.Id)
	if errors.Is(err, jobmanager.ErrJobExpired) {
		return &api.QueryJobResponse{Job: toAPIJob(rec), Expired: true}, nil
	}

	if err != nil {
		return nil, s.mapError("query job", err)
	}

	return &api.QueryJobResponse{Job: toAPIJob(rec)}, nil
}

func (s *server) ListJobs(
	ctx context.Context,
	req *api.ListJobsRequest,
) (*api.ListJobsResponse, error) {
	records := s.manager.List()

	jobs := make([]*api.Job, 0, len(records))
	for _, r := range records {
		jobs = append(jobs, toAPIJob(r))
	}

	return &api.ListJobsResponse{Jobs: jobs}, nil
}

func (s *server) SweepExpired(
	ctx context.Context,
	req *api.SweepExpiredRequest,
) (*api.SweepExpiredResponse, error) {
	n := s.manager.SweepAll()

	s.logger.Info("swept expired jobs", "evicted", n)

	return &api.SweepExpiredResponse{Evicted: int32(n)}, nil
}

func (s *server) WatchJobs(
	req *api.WatchJobsRequest,
	stream grpc.ServerStreamingServer[api.JobUpdate],
) error {
	sub := s.manager.Subscribe(req.Id)
	defer sub.Close()

	ctx := stream.Context()

	for {
		select {
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()

		case e, ok := <-sub.Events():
			if !ok {
				return status.Error(codes.Unavailable, "server shutting down")
			}

			if err := stream.Send(&api.JobUpdate{
				Id:  e.ID,
				Job: toAPIJob(e.Job),
			}); err != nil {
				s.logger.Warn("send job update", "id", e.ID, "err", err)
				return status.Error(codes.DataLoss, "failed to send job update")
			}
		}
	}
}

// mapError translates jobmanager errors to gRPC errors.
func (s *server) mapError(logMsg string, err error) error {
	var validationErr *jobmanager.ValidationError

	switch {
	case errors.As(err, &validationErr):
		s.logger.Warn(logMsg, "err", err)
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, jobmanager.ErrJobNotFound):
		s.logger.Warn(logMsg, "err", err)
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, jobmanager.ErrShuttingDown):
		s.logger.Warn(logMsg, "err", err)
		return status.Error(codes.Unavailable, err.Error())

	default:
		s.logger.Error(logMsg, "err", err)
		return status.Error(codes.Internal, "internal server error")
	}
}

// loadCreds returns TLS credentials when a server certificate is configured,
// mutual TLS when a CA is also configured, and plaintext otherwise.
func loadCreds(cfg *config.ServerConfig) (credentials.TransportCredentials, error) {
	if cfg.CertPath == "" {
		return insecure.NewCredentials(), nil
	}

	tlsConfig, err := tlsconfig.SetupTLS(&tlsconfig.Config{
		CertPath:   cfg.CertPath,
		KeyPath:    cfg.KeyPath,
		CACertPath: cfg.CACertPath,
		Server:     true,
	})
	if err != nil {
		return nil, err
	}

	return credentials.NewTLS(tlsConfig), nil
}

// contextCheckUnaryInterceptor rejects requests with a cancelled context.
func contextCheckUnaryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	if ctx.Err() != nil {
		return nil, status.FromContextError(ctx.Err()).Err()
	}

	return handler(ctx, req)
}

func contextCheckStreamInterceptor(
	srv any,
	ss grpc.ServerStream,
	info *grpc.StreamServerInfo,
	handler grpc.StreamHandler,
) error {
	if ss.Context().Err() != nil {
		return status.FromContextError(ss.Context().Err()).Err()
	}

	return handler(srv, ss)
}
