package main

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	api "github.com/nixpig/slideworker/api/v1"
	"github.com/nixpig/slideworker/internal/config"
	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/nixpig/slideworker/internal/tlsconfig"
	"github.com/nixpig/slideworker/internal/tlsconfig/tlstest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func dial(t *testing.T, addr string, cfg *tlsconfig.Config) *grpc.ClientConn {
	t.Helper()

	clientTLSConfig, err := tlsconfig.SetupTLS(cfg)
	if err != nil {
		t.Fatalf("failed to setup client TLS: '%v'", err)
	}

	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(credentials.NewTLS(clientTLSConfig)),
	)
	if err != nil {
		t.Fatalf("failed to connect: '%v'", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

func setupTestClientAndServer(
	t *testing.T,
	workers map[jobmanager.JobType]string,
) (api.JobServiceClient, *testStack, string, tlstest.Paths) {
	t.Helper()

	certs := tlstest.Generate(t)
	stack := newTestStack(t, workers)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to setup listener: '%v'", err)
	}

	s, err := newServer(
		stack.manager,
		slog.New(slog.DiscardHandler),
		&config.ServerConfig{
			CertPath:   certs.ServerCert,
			KeyPath:    certs.ServerKey,
			CACertPath: certs.CACert,
		},
	)
	if err != nil {
		t.Fatalf("failed to create server: '%v'", err)
	}

	go func() {
		if err := s.start(listener); err != nil {
			t.Logf("failed to start server: '%v'", err)
		}
	}()

	t.Cleanup(s.shutdown)

	conn := dial(t, listener.Addr().String(), &tlsconfig.Config{
		CertPath:   certs.ClientCert,
		KeyPath:    certs.ClientKey,
		CACertPath: certs.CACert,
		ServerName: "localhost",
	})

	return api.NewJobServiceClient(conn), stack, listener.Addr().String(), certs
}

func testStatusCode(t *testing.T, err error, want codes.Code) {
	t.Helper()

	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected gRPC status error: got '%v'", err)
	}

	if st.Code() != want {
		t.Errorf("expected status code: got '%v', want '%v'", st.Code(), want)
	}
}

func TestJobServerIntegration(t *testing.T) {
	client, stack, addr, certs := setupTestClientAndServer(
		t,
		map[jobmanager.JobType]string{
			jobmanager.JobTypePatching: progressWorker,
			jobmanager.JobTypeMerging:  failingWorker,
		},
	)

	ctx := context.Background()

	stack.slide(t, "slide.svs")

	t.Run("Test submit validation", func(t *testing.T) {
		scenarios := map[string]*api.SubmitJobRequest{
			"unspecified type": {Target: "slide.svs"},
			"empty target":     {Type: api.JobType_JOB_TYPE_PATCHING},
			"missing artifact": {Type: api.JobType_JOB_TYPE_PATCHING, Target: "absent.svs"},
			"invalid artifact": {Type: api.JobType_JOB_TYPE_PATCHING, Target: "../slide.svs"},
		}

		for scenario, req := range scenarios {
			t.Run(scenario, func(t *testing.T) {
				before := len(stack.manager.List())

				_, err := client.SubmitJob(ctx, req)
				testStatusCode(t, err, codes.InvalidArgument)

				if got := len(stack.manager.List()); got != before {
					t.Errorf("expected no job registered: got '%d', want '%d'", got, before)
				}
			})
		}
	})

	t.Run("Test job lifecycle", func(t *testing.T) {
		watch, err := client.WatchJobs(ctx, &api.WatchJobsRequest{})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		stack.waitForSubscribers(t, 1)

		resp, err := client.SubmitJob(ctx, &api.SubmitJobRequest{
			Type:   api.JobType_JOB_TYPE_PATCHING,
			Target: "slide.svs",
		})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if _, err := uuid.Parse(resp.Id); err != nil {
			t.Errorf("expected to get valid UUID: got '%v'", resp.Id)
		}

		var statuses []api.JobStatus

		for {
			update, err := watch.Recv()
			if err != nil {
				t.Fatalf("expected not to get error: got '%v'", err)
			}

			if update.Id != resp.Id {
				continue
			}

			statuses = append(statuses, update.GetJob().GetStatus())

			if update.GetJob().GetStatus() == api.JobStatus_JOB_STATUS_COMPLETED {
				break
			}
		}

		if statuses[0] != api.JobStatus_JOB_STATUS_STARTED {
			t.Errorf("expected first update: got '%s', want '%s'", statuses[0], api.JobStatus_JOB_STATUS_STARTED)
		}

		queryResp, err := client.QueryJob(ctx, &api.QueryJobRequest{Id: resp.Id})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		job := queryResp.GetJob()

		if job.Status != api.JobStatus_JOB_STATUS_COMPLETED {
			t.Errorf("expected status: got '%s', want '%s'", job.Status, api.JobStatus_JOB_STATUS_COMPLETED)
		}

		if job.Type != api.JobType_JOB_TYPE_PATCHING {
			t.Errorf("expected type: got '%s', want '%s'", job.Type, api.JobType_JOB_TYPE_PATCHING)
		}

		if job.Progress != 80 {
			t.Errorf("expected progress: got '%v', want '%v'", job.Progress, 80)
		}

		if job.OutputLog != "progress: 40%\nprogress: 80%\ndone\n" {
			t.Errorf("expected output log: got '%q'", job.OutputLog)
		}

		wantExpiry := stack.clock.Now().Add(time.Hour)
		if job.ExpireAt == nil || !job.ExpireAt.AsTime().Equal(wantExpiry) {
			t.Errorf("expected expire at: got '%v', want '%v'", job.ExpireAt.AsTime(), wantExpiry)
		}

		if queryResp.Expired {
			t.Errorf("expected job not to be expired")
		}
	})

	t.Run("Test failed job", func(t *testing.T) {
		resp, err := client.SubmitJob(ctx, &api.SubmitJobRequest{
			Type:   api.JobType_JOB_TYPE_MERGING,
			Target: "slide.svs",
		})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		stack.waitForTerminal(t, resp.Id)

		queryResp, err := client.QueryJob(ctx, &api.QueryJobRequest{Id: resp.Id})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		job := queryResp.GetJob()

		if job.Status != api.JobStatus_JOB_STATUS_FAILED {
			t.Errorf("expected status: got '%s', want '%s'", job.Status, api.JobStatus_JOB_STATUS_FAILED)
		}

		if job.ExitCode != 2 {
			t.Errorf("expected exit code: got '%d', want '%d'", job.ExitCode, 2)
		}

		if job.ErrorLog != "boom\n" {
			t.Errorf("expected error log: got '%q', want '%q'", job.ErrorLog, "boom\n")
		}
	})

	t.Run("Test list jobs", func(t *testing.T) {
		resp, err := client.ListJobs(ctx, &api.ListJobsRequest{})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if len(resp.Jobs) != 2 {
			t.Errorf("expected jobs: got '%d', want '%d'", len(resp.Jobs), 2)
		}
	})

	t.Run("Test query unknown job", func(t *testing.T) {
		_, err := client.QueryJob(ctx, &api.QueryJobRequest{Id: uuid.NewString()})
		testStatusCode(t, err, codes.NotFound)

		_, err = client.QueryJob(ctx, &api.QueryJobRequest{})
		testStatusCode(t, err, codes.InvalidArgument)
	})

	t.Run("Test expiry", func(t *testing.T) {
		jobs := stack.manager.List()

		// Completed jobs expire after an hour, failed jobs after five.
		stack.clock.Advance(time.Hour + time.Second)

		var completed, failed string
		for _, j := range jobs {
			if j.Status == jobmanager.StatusCompleted {
				completed = j.ID
			} else {
				failed = j.ID
			}
		}

		queryResp, err := client.QueryJob(ctx, &api.QueryJobRequest{Id: completed})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if !queryResp.Expired {
			t.Errorf("expected job to be expired")
		}

		if queryResp.GetJob().GetId() != completed {
			t.Errorf("expected last snapshot: got '%s', want '%s'", queryResp.GetJob().GetId(), completed)
		}

		_, err = client.QueryJob(ctx, &api.QueryJobRequest{Id: completed})
		testStatusCode(t, err, codes.NotFound)

		sweepResp, err := client.SweepExpired(ctx, &api.SweepExpiredRequest{})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if sweepResp.Evicted != 0 {
			t.Errorf("expected evicted: got '%d', want '%d'", sweepResp.Evicted, 0)
		}

		stack.clock.Advance(4 * time.Hour)

		sweepResp, err = client.SweepExpired(ctx, &api.SweepExpiredRequest{})
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if sweepResp.Evicted != 1 {
			t.Errorf("expected evicted: got '%d', want '%d'", sweepResp.Evicted, 1)
		}

		_, err = client.QueryJob(ctx, &api.QueryJobRequest{Id: failed})
		testStatusCode(t, err, codes.NotFound)
	})

	t.Run("Test health", func(t *testing.T) {
		conn := dial(t, addr, &tlsconfig.Config{
			CertPath:   certs.ClientCert,
			KeyPath:    certs.ClientKey,
			CACertPath: certs.CACert,
			ServerName: "localhost",
		})

		resp, err := healthpb.NewHealthClient(conn).Check(
			ctx,
			&healthpb.HealthCheckRequest{Service: api.JobService_ServiceDesc.ServiceName},
		)
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if resp.Status != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("expected serving: got '%v'", resp.Status)
		}
	})

	t.Run("Test reflection", func(t *testing.T) {
		conn := dial(t, addr, &tlsconfig.Config{
			CertPath:   certs.ClientCert,
			KeyPath:    certs.ClientKey,
			CACertPath: certs.CACert,
			ServerName: "localhost",
		})

		stream, err := reflectionpb.NewServerReflectionClient(conn).ServerReflectionInfo(ctx)
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}
		defer stream.CloseSend()

		if err := stream.Send(&reflectionpb.ServerReflectionRequest{
			MessageRequest: &reflectionpb.ServerReflectionRequest_ListServices{},
		}); err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		resp, err := stream.Recv()
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		var listed bool
		for _, svc := range resp.GetListServicesResponse().GetService() {
			if svc.GetName() == api.JobService_ServiceDesc.ServiceName {
				listed = true
			}
		}

		if !listed {
			t.Errorf("expected %s to be listed: got '%v'", api.JobService_ServiceDesc.ServiceName, resp.GetListServicesResponse().GetService())
		}

		if err := stream.Send(&reflectionpb.ServerReflectionRequest{
			MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{
				FileContainingSymbol: "job.v1.Job",
			},
		}); err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		resp, err = stream.Recv()
		if err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		files := resp.GetFileDescriptorResponse().GetFileDescriptorProto()
		if len(files) == 0 {
			t.Fatalf("expected file descriptor for job.v1.Job: got '%v'", resp)
		}

		var fd descriptorpb.FileDescriptorProto
		if err := proto.Unmarshal(files[0], &fd); err != nil {
			t.Fatalf("expected not to get error: got '%v'", err)
		}

		if fd.GetName() != "api/v1/job.proto" {
			t.Errorf("expected file name: got '%s', want '%s'", fd.GetName(), "api/v1/job.proto")
		}
	})

	t.Run("Test client without certificate", func(t *testing.T) {
		conn := dial(t, addr, &tlsconfig.Config{
			CACertPath: certs.CACert,
			ServerName: "localhost",
		})

		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		_, err := api.NewJobServiceClient(conn).ListJobs(ctx, &api.ListJobsRequest{})
		if err == nil {
			t.Errorf("expected to get error for client without certificate")
		}
	})
}

func TestWatchJobsShutdown(t *testing.T) {
	client, stack, _, _ := setupTestClientAndServer(t, nil)

	watch, err := client.WatchJobs(context.Background(), &api.WatchJobsRequest{})
	if err != nil {
		t.Fatalf("expected not to get error: got '%v'", err)
	}

	stack.waitForSubscribers(t, 1)

	stack.manager.Shutdown()

	_, err = watch.Recv()
	testStatusCode(t, err, codes.Unavailable)
}
