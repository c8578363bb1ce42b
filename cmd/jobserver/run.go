package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/nixpig/slideworker/internal/artifact"
	"github.com/nixpig/slideworker/internal/config"
	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/nixpig/slideworker/internal/relay"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// run serves the gRPC API and, when configured, the HTTP gateway until ctx is
// cancelled. Running workers are killed on the way out.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	manager, err := jobmanager.NewManager(
		store,
		jobmanager.WithLogger(logger),
		jobmanager.WithProfiles(cfg.Profiles()),
		jobmanager.WithMaxConcurrent(cfg.Jobs.MaxConcurrent),
		jobmanager.WithCgroupRoot(cfg.Jobs.CgroupRoot),
		jobmanager.WithErrorPublishInterval(cfg.Jobs.ErrorPublishInterval),
	)
	if err != nil {
		return fmt.Errorf("create job manager: %w", err)
	}

	sinks, err := newSinks(ctx, cfg)
	if err != nil {
		manager.Shutdown()
		return err
	}

	rl := relay.New(logger, sinks...)
	defer func() {
		if err := rl.Close(); err != nil {
			logger.Warn("close relay sinks", "err", err)
		}
	}()

	listener, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		manager.Shutdown()
		return fmt.Errorf("listen on %s: %w", cfg.Server.GRPCAddr, err)
	}

	srv, err := newServer(manager, logger, &cfg.Server)
	if err != nil {
		listener.Close()
		manager.Shutdown()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting grpc server", "addr", listener.Addr().String())
		return srv.start(listener)
	})

	var gw *gateway
	if cfg.Server.HTTPAddr != "" {
		gw = newGateway(manager, store, logger)

		g.Go(func() error {
			logger.Info("starting http gateway", "addr", cfg.Server.HTTPAddr)
			return gw.app.Listen(cfg.Server.HTTPAddr)
		})
	}

	g.Go(func() error {
		manager.RunSweeper(gctx, cfg.Jobs.SweepInterval)
		return nil
	})

	if len(sinks) > 0 {
		sub := manager.Subscribe("")

		g.Go(func() error {
			rl.Run(gctx, sub)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down")

		// Watch streams and sockets only end once their subscriptions are
		// closed, so the manager goes first.
		manager.Shutdown()

		srv.shutdown()

		if gw != nil {
			if err := gw.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
				logger.Warn("shutdown http gateway", "err", err)
			}
		}

		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func newStore(ctx context.Context, cfg *config.Config) (artifact.Store, error) {
	switch cfg.Storage.Kind {
	case config.StorageS3:
		return artifact.NewS3Store(ctx, artifact.S3Config(cfg.Storage.S3))

	default:
		return artifact.NewLocalStore(cfg.Storage.Dir)
	}
}

func newSinks(ctx context.Context, cfg *config.Config) ([]relay.Sink, error) {
	var sinks []relay.Sink

	if cfg.Relay.RedisAddr != "" {
		sink, err := relay.NewRedisSink(ctx, relay.RedisConfig{
			Addr:      cfg.Relay.RedisAddr,
			Password:  cfg.Relay.RedisPassword,
			DB:        cfg.Relay.RedisDB,
			Channel:   cfg.Relay.RedisChannel,
			KeyPrefix: cfg.Relay.RedisKeyPrefix,
			KeyTTL:    longestRetention(cfg),
		})
		if err != nil {
			return nil, err
		}

		sinks = append(sinks, sink)
	}

	if cfg.Relay.AMQPURL != "" {
		sink, err := relay.NewAMQPSink(relay.AMQPConfig{
			URL:      cfg.Relay.AMQPURL,
			Exchange: cfg.Relay.AMQPExchange,
		})
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}

			return nil, err
		}

		sinks = append(sinks, sink)
	}

	return sinks, nil
}

// longestRetention keeps relayed snapshots around as long as any job can be
// queried.
func longestRetention(cfg *config.Config) time.Duration {
	var longest time.Duration

	for _, p := range cfg.Profiles() {
		longest = max(longest, p.CompletedRetention, p.FailedRetention)
	}

	return longest
}
