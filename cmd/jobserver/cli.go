package main

import (
	"log/slog"
	"os"

	"github.com/nixpig/slideworker/internal/config"
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "jobserver",
		Short: "Run slide processing jobs and broadcast their progress",
		Example: `  jobserver --debug
  jobserver --storage s3 --grpc-addr :8443 --http-addr :5000
  SLIDEWORKER_JOBS_PATCHING_COMMAND="python3 patch_extraction.py" jobserver`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logLevel := slog.LevelInfo
			if cfg.Server.Debug {
				logLevel = slog.LevelDebug
			}

			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: logLevel,
			}))

			return run(cmd.Context(), cfg, logger)
		},
	}

	config.RegisterFlags(c.Flags())

	return c
}
