package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"text/tabwriter"
	"time"

	api "github.com/nixpig/slideworker/api/v1"
	"github.com/nixpig/slideworker/internal/tlsconfig"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// TODO: Inject version at build time.
const version = "0.1.0"

type config struct {
	serverHostname string
	serverPort     string
	caCertPath     string
	certPath       string
	keyPath        string
}

type cli struct {
	client api.JobServiceClient
	conn   *grpc.ClientConn
}

func newCLI() *cli {
	return &cli{}
}

func (c *cli) rootCmd() *cobra.Command {
	cfg := &config{}

	command := &cobra.Command{
		Use:          "jobctl",
		Short:        "CLI for submitting and following slide processing jobs",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			creds, err := transportCreds(cfg)
			if err != nil {
				return err
			}

			c.conn, err = grpc.NewClient(
				net.JoinHostPort(
					cfg.serverHostname,
					cfg.serverPort,
				),
				grpc.WithTransportCredentials(creds),
			)
			if err != nil {
				return err
			}

			c.client = api.NewJobServiceClient(c.conn)

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.conn == nil {
				return nil
			}

			// Connection needs to remain open for duration of any child commands.
			return c.conn.Close()
		},
	}

	command.AddCommand(
		c.submitCmd(),
		c.statusCmd(),
		c.listCmd(),
		c.sweepCmd(),
		c.watchCmd(),
	)

	command.CompletionOptions.HiddenDefaultCmd = true

	command.PersistentFlags().StringVar(
		&cfg.serverHostname,
		"server-hostname",
		"localhost",
		"Server hostname",
	)

	command.PersistentFlags().StringVar(
		&cfg.serverPort,
		"server-port",
		"8443",
		"Server port",
	)

	command.PersistentFlags().StringVar(
		&cfg.certPath,
		"cert-path",
		"",
		"Path to client TLS certificate",
	)

	command.PersistentFlags().StringVar(
		&cfg.keyPath,
		"key-path",
		"",
		"Path to client TLS private key",
	)

	command.PersistentFlags().StringVar(
		&cfg.caCertPath,
		"ca-cert-path",
		"",
		"Path to CA certificate, connects without TLS when empty",
	)

	return command
}

// transportCreds uses TLS when a CA certificate is given and plaintext
// otherwise.
func transportCreds(cfg *config) (credentials.TransportCredentials, error) {
	if cfg.caCertPath == "" {
		return insecure.NewCredentials(), nil
	}

	tlsConfig, err := tlsconfig.SetupTLS(&tlsconfig.Config{
		CertPath:   cfg.certPath,
		KeyPath:    cfg.keyPath,
		CACertPath: cfg.caCertPath,
		ServerName: cfg.serverHostname,
	})
	if err != nil {
		return nil, err
	}

	return credentials.NewTLS(tlsConfig), nil
}

func (c *cli) submitCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "submit [flags] JOB_TYPE TARGET",
		Short: "Submit a new job",
		Long: "Submit a new job. JOB_TYPE is one of patching, prediction or " +
			"merging. TARGET names an uploaded slide.",
		Example: "  jobctl submit prediction slide-042.svs",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobType, err := parseType(args[0])
			if err != nil {
				return err
			}

			resp, err := c.client.SubmitJob(
				cmd.Context(),
				&api.SubmitJobRequest{
					Type:   jobType,
					Target: args[1],
				},
			)
			if err != nil {
				return mapError(err)
			}

			cmd.OutOrStdout().Write([]byte(resp.Id + "\n"))

			return nil
		},
	}

	return command
}

func (c *cli) statusCmd() *cobra.Command {
	var showLogs bool

	command := &cobra.Command{
		Use:     "status [flags] JOB_ID",
		Short:   "Query status of job",
		Example: "  jobctl status 9302033c-f8f7-4b6e-9363-a7aa201cce1b",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.QueryJob(
				cmd.Context(),
				&api.QueryJobRequest{Id: args[0]},
			)
			if err != nil {
				return mapError(err)
			}

			out := cmd.OutOrStdout()

			writeJobs(out, resp.GetJob())

			if resp.Expired {
				fmt.Fprintln(out, "\njob expired and has been cleaned up")
			}

			job := resp.GetJob()

			if job.Error != "" {
				fmt.Fprintf(out, "\nerror: %s\n", job.Error)
			}

			if showLogs {
				fmt.Fprintf(out, "\n--- output ---\n%s", job.OutputLog)
				fmt.Fprintf(out, "--- errors ---\n%s", job.ErrorLog)
			}

			return nil
		},
	}

	command.Flags().BoolVar(&showLogs, "logs", false, "Print the job's output and error logs")

	return command
}

func (c *cli) listCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "list",
		Short:   "List tracked jobs",
		Example: "  jobctl list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.ListJobs(cmd.Context(), &api.ListJobsRequest{})
			if err != nil {
				return mapError(err)
			}

			writeJobs(cmd.OutOrStdout(), resp.Jobs...)

			return nil
		},
	}

	return command
}

func (c *cli) sweepCmd() *cobra.Command {
	command := &cobra.Command{
		Use:     "sweep",
		Short:   "Evict every job past its retention",
		Example: "  jobctl sweep",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.client.SweepExpired(cmd.Context(), &api.SweepExpiredRequest{})
			if err != nil {
				return mapError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "evicted %d expired jobs\n", resp.Evicted)

			return nil
		},
	}

	return command
}

func (c *cli) watchCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "watch [flags] [JOB_ID]",
		Short: "Follow job updates",
		Long: "Follow job updates as they are published. Only updates for " +
			"JOB_ID are shown when it is given.",
		Example: "  jobctl watch 9302033c-f8f7-4b6e-9363-a7aa201cce1b",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &api.WatchJobsRequest{}
			if len(args) == 1 {
				req.Id = args[0]
			}

			stream, err := c.client.WatchJobs(cmd.Context(), req)
			if err != nil {
				return mapError(err)
			}

			for {
				update, err := stream.Recv()
				if err != nil {
					if err == io.EOF {
						break
					}

					if status.Code(err) == codes.Canceled {
						break
					}

					return mapError(err)
				}

				fmt.Fprintln(cmd.OutOrStdout(), formatUpdate(update))

				job := update.GetJob()

				// A single job has nothing more to report once it is terminal.
				if req.Id != "" && isTerminal(job.GetStatus()) {
					break
				}
			}

			return nil
		},
	}

	return command
}

func writeJobs(out io.Writer, jobs ...*api.Job) {
	// TODO: Only output headers if TTY. Or could add a flag like --plain or
	// --skip-headers to hide headers.
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "ID\tTYPE\tTARGET\tSTATUS\tPROGRESS\tELAPSED\tESTIMATE\tEXIT CODE\t\n")

	for _, job := range jobs {
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%.1f%%\t%s\t%s\t%s\t\n",
			job.Id,
			mapType(job.Type),
			job.Target,
			mapStatus(job.Status),
			job.Progress,
			seconds(job.ElapsedSeconds),
			seconds(job.EstimatedTotalSeconds),
			exitCode(job),
		)
	}

	w.Flush()
}

func formatUpdate(update *api.JobUpdate) string {
	job := update.GetJob()

	return fmt.Sprintf(
		"%s  %-10s  %-9s  %5.1f%%  %s/%s",
		update.Id,
		mapType(job.Type),
		mapStatus(job.Status),
		job.Progress,
		seconds(job.ElapsedSeconds),
		seconds(job.EstimatedTotalSeconds),
	)
}

func seconds(s int64) string {
	return (time.Duration(s) * time.Second).String()
}

func exitCode(job *api.Job) string {
	if !isTerminal(job.Status) {
		return "-"
	}

	return fmt.Sprintf("%d", job.ExitCode)
}

func isTerminal(s api.JobStatus) bool {
	return s == api.JobStatus_JOB_STATUS_COMPLETED ||
		s == api.JobStatus_JOB_STATUS_FAILED
}

// mapError translates gRPC errors to human-readable messages.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return errors.New("not found")
	case codes.PermissionDenied:
		return errors.New("permission denied")
	case codes.Unauthenticated:
		return errors.New("not authenticated")
	case codes.InvalidArgument:
		return fmt.Errorf("%s", st.Message())
	case codes.Unavailable:
		return errors.New("server unavailable")
	default:
		return fmt.Errorf("%s", st.Message())
	}
}

var jobTypeNames = map[api.JobType]string{
	api.JobType_JOB_TYPE_PATCHING:   "patching",
	api.JobType_JOB_TYPE_PREDICTION: "prediction",
	api.JobType_JOB_TYPE_MERGING:    "merging",
}

// parseType translates a job type name given on the command line.
func parseType(s string) (api.JobType, error) {
	for t, name := range jobTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}

	return api.JobType_JOB_TYPE_UNSPECIFIED, fmt.Errorf(
		"unknown job type %q: must be one of patching, prediction or merging",
		s,
	)
}

// mapType translates gRPC JobType enum values to human-readable strings.
func mapType(t api.JobType) string {
	if name, ok := jobTypeNames[t]; ok {
		return name
	}

	if t == api.JobType_JOB_TYPE_UNSPECIFIED {
		return "unspecified"
	}

	return fmt.Sprintf("unknown(%d)", t)
}

// mapStatus translates gRPC JobStatus enum values to human-readable strings.
func mapStatus(s api.JobStatus) string {
	switch s {
	case api.JobStatus_JOB_STATUS_UNSPECIFIED:
		return "Unspecified"
	case api.JobStatus_JOB_STATUS_STARTED:
		return "Started"
	case api.JobStatus_JOB_STATUS_RUNNING:
		return "Running"
	case api.JobStatus_JOB_STATUS_COMPLETED:
		return "Completed"
	case api.JobStatus_JOB_STATUS_FAILED:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}
