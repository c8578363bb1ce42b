// Package config loads jobserver settings from flags, environment, an
// optional .env file and an optional config file, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/nixpig/slideworker/internal/jobmanager/cgroups"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SLIDEWORKER"

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Jobs    JobsConfig
	Relay   RelayConfig
}

type ServerConfig struct {
	GRPCAddr string
	// HTTPAddr is the gateway listen address. Empty disables the gateway.
	HTTPAddr string
	Debug    bool

	// TLS is enabled for gRPC when CertPath and KeyPath are set. Client
	// certificates are required when CACertPath is also set.
	CertPath   string
	KeyPath    string
	CACertPath string
}

type StorageConfig struct {
	Kind string
	Dir  string
	S3   S3Config
}

type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	StagingDir      string
}

type JobsConfig struct {
	MaxConcurrent        int
	SweepInterval        time.Duration
	ErrorPublishInterval time.Duration
	CgroupRoot           string

	Patching   JobTypeConfig
	Prediction JobTypeConfig
	Merging    JobTypeConfig
}

type JobTypeConfig struct {
	Command            []string
	EstimatedTotal     time.Duration
	PublishInterval    time.Duration
	PublishOnProgress  bool
	RefineEstimate     bool
	FillOnComplete     bool
	Dedup              bool
	CompletedRetention time.Duration
	FailedRetention    time.Duration

	CPUMaxPercent  int64
	MemoryMaxBytes int64
	PidsMax        int64
}

type RelayConfig struct {
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisChannel   string
	RedisKeyPrefix string

	AMQPURL      string
	AMQPExchange string
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"grpc-addr":      "server.grpc_addr",
	"http-addr":      "server.http_addr",
	"debug":          "server.debug",
	"server-cert":    "server.cert_path",
	"server-key":     "server.key_path",
	"ca-cert":        "server.ca_cert_path",
	"storage":        "storage.kind",
	"upload-dir":     "storage.dir",
	"max-concurrent": "jobs.max_concurrent",
	"sweep-interval": "jobs.sweep_interval",
	"cgroup-root":    "jobs.cgroup_root",
}

// RegisterFlags adds the flags Load understands to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to config file (default ./slideworker.yaml if present)")
	flags.String("env-file", ".env", "Path to .env file")

	flags.String("grpc-addr", "localhost:8443", "gRPC listen address")
	flags.String("http-addr", "localhost:5000", "HTTP gateway listen address, empty to disable")
	flags.Bool("debug", false, "Enable debug logs")

	flags.String("server-cert", "", "Path to server certificate")
	flags.String("server-key", "", "Path to server private key")
	flags.String("ca-cert", "", "Path to CA certificate for client verification")

	flags.String("storage", StorageLocal, "Artifact storage: local or s3")
	flags.String("upload-dir", "uploads", "Directory holding uploaded artifacts")

	flags.Int("max-concurrent", 0, "Maximum concurrent workers, 0 for unbounded")
	flags.Duration("sweep-interval", time.Minute, "Interval between expired job sweeps, 0 to disable")
	flags.String("cgroup-root", "", "cgroup v2 root for worker resource limits, empty to disable")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_addr", "localhost:8443")
	v.SetDefault("server.http_addr", "localhost:5000")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.cert_path", "")
	v.SetDefault("server.key_path", "")
	v.SetDefault("server.ca_cert_path", "")

	v.SetDefault("storage.kind", StorageLocal)
	v.SetDefault("storage.dir", "uploads")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")
	v.SetDefault("storage.s3.use_path_style", false)
	v.SetDefault("storage.s3.staging_dir", filepath.Join(os.TempDir(), "slideworker"))

	v.SetDefault("jobs.max_concurrent", 0)
	v.SetDefault("jobs.sweep_interval", time.Minute)
	v.SetDefault("jobs.error_publish_interval", time.Second)
	v.SetDefault("jobs.cgroup_root", "")

	for jobType, p := range jobmanager.DefaultProfiles() {
		prefix := "jobs." + jobType.String() + "."

		v.SetDefault(prefix+"command", p.Command)
		v.SetDefault(prefix+"estimated_total", p.EstimatedTotal)
		v.SetDefault(prefix+"publish_interval", p.PublishInterval)
		v.SetDefault(prefix+"publish_on_progress", p.PublishOnProgress)
		v.SetDefault(prefix+"refine_estimate", p.RefineEstimate)
		v.SetDefault(prefix+"fill_on_complete", p.FillOnComplete)
		v.SetDefault(prefix+"dedup", p.Dedup)
		v.SetDefault(prefix+"completed_retention", p.CompletedRetention)
		v.SetDefault(prefix+"failed_retention", p.FailedRetention)
		v.SetDefault(prefix+"cpu_max_percent", 0)
		v.SetDefault(prefix+"memory_max_bytes", 0)
		v.SetDefault(prefix+"pids_max", 0)
	}

	v.SetDefault("relay.redis.addr", "")
	v.SetDefault("relay.redis.password", "")
	v.SetDefault("relay.redis.db", 0)
	v.SetDefault("relay.redis.channel", "slideworker:job_update")
	v.SetDefault("relay.redis.key_prefix", "job_status:")
	v.SetDefault("relay.amqp.url", "")
	v.SetDefault("relay.amqp.exchange", "slideworker.jobs")
}

// Load resolves the Config. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	envFile, configFile := ".env", ""

	if flags != nil {
		if f := flags.Lookup("env-file"); f != nil {
			envFile = f.Value.String()
		}

		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("slideworker")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			GRPCAddr:   v.GetString("server.grpc_addr"),
			HTTPAddr:   v.GetString("server.http_addr"),
			Debug:      v.GetBool("server.debug"),
			CertPath:   v.GetString("server.cert_path"),
			KeyPath:    v.GetString("server.key_path"),
			CACertPath: v.GetString("server.ca_cert_path"),
		},
		Storage: StorageConfig{
			Kind: v.GetString("storage.kind"),
			Dir:  v.GetString("storage.dir"),
			S3: S3Config{
				Bucket:          v.GetString("storage.s3.bucket"),
				Prefix:          v.GetString("storage.s3.prefix"),
				Region:          v.GetString("storage.s3.region"),
				Endpoint:        v.GetString("storage.s3.endpoint"),
				AccessKeyID:     v.GetString("storage.s3.access_key_id"),
				SecretAccessKey: v.GetString("storage.s3.secret_access_key"),
				UsePathStyle:    v.GetBool("storage.s3.use_path_style"),
				StagingDir:      v.GetString("storage.s3.staging_dir"),
			},
		},
		Jobs: JobsConfig{
			MaxConcurrent:        v.GetInt("jobs.max_concurrent"),
			SweepInterval:        v.GetDuration("jobs.sweep_interval"),
			ErrorPublishInterval: v.GetDuration("jobs.error_publish_interval"),
			CgroupRoot:           v.GetString("jobs.cgroup_root"),
			Patching:             jobTypeConfig(v, jobmanager.JobTypePatching),
			Prediction:           jobTypeConfig(v, jobmanager.JobTypePrediction),
			Merging:              jobTypeConfig(v, jobmanager.JobTypeMerging),
		},
		Relay: RelayConfig{
			RedisAddr:      v.GetString("relay.redis.addr"),
			RedisPassword:  v.GetString("relay.redis.password"),
			RedisDB:        v.GetInt("relay.redis.db"),
			RedisChannel:   v.GetString("relay.redis.channel"),
			RedisKeyPrefix: v.GetString("relay.redis.key_prefix"),
			AMQPURL:        v.GetString("relay.amqp.url"),
			AMQPExchange:   v.GetString("relay.amqp.exchange"),
		},
	}

	return cfg, nil
}

func jobTypeConfig(v *viper.Viper, jobType jobmanager.JobType) JobTypeConfig {
	prefix := "jobs." + jobType.String() + "."

	return JobTypeConfig{
		Command:            v.GetStringSlice(prefix + "command"),
		EstimatedTotal:     v.GetDuration(prefix + "estimated_total"),
		PublishInterval:    v.GetDuration(prefix + "publish_interval"),
		PublishOnProgress:  v.GetBool(prefix + "publish_on_progress"),
		RefineEstimate:     v.GetBool(prefix + "refine_estimate"),
		FillOnComplete:     v.GetBool(prefix + "fill_on_complete"),
		Dedup:              v.GetBool(prefix + "dedup"),
		CompletedRetention: v.GetDuration(prefix + "completed_retention"),
		FailedRetention:    v.GetDuration(prefix + "failed_retention"),
		CPUMaxPercent:      v.GetInt64(prefix + "cpu_max_percent"),
		MemoryMaxBytes:     v.GetInt64(prefix + "memory_max_bytes"),
		PidsMax:            v.GetInt64(prefix + "pids_max"),
	}
}

// Validate checks the Config for settings that cannot work.
func (c *Config) Validate() error {
	if c.Server.GRPCAddr == "" {
		return errors.New("grpc-addr cannot be empty")
	}

	if (c.Server.CertPath == "") != (c.Server.KeyPath == "") {
		return errors.New("server-cert and server-key must be set together")
	}

	if c.Server.CACertPath != "" && c.Server.CertPath == "" {
		return errors.New("ca-cert requires server-cert and server-key")
	}

	for name, path := range map[string]string{
		"server-cert": c.Server.CertPath,
		"server-key":  c.Server.KeyPath,
		"ca-cert":     c.Server.CACertPath,
	} {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("failed to stat %s: %w", name, err)
		}
	}

	switch c.Storage.Kind {
	case StorageLocal:
		if c.Storage.Dir == "" {
			return errors.New("upload-dir cannot be empty")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			return errors.New("s3 bucket cannot be empty")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage.Kind)
	}

	if c.Jobs.MaxConcurrent < 0 {
		return errors.New("max-concurrent cannot be negative")
	}

	for jobType, p := range c.Profiles() {
		if len(p.Command) == 0 {
			return fmt.Errorf("%s command cannot be empty", jobType)
		}

		if p.CompletedRetention < 0 || p.FailedRetention < 0 {
			return fmt.Errorf("%s retention cannot be negative", jobType)
		}
	}

	return nil
}

// Profiles converts the per-type settings into Manager policy.
func (c *Config) Profiles() map[jobmanager.JobType]jobmanager.Profile {
	return map[jobmanager.JobType]jobmanager.Profile{
		jobmanager.JobTypePatching:   c.Jobs.Patching.profile(),
		jobmanager.JobTypePrediction: c.Jobs.Prediction.profile(),
		jobmanager.JobTypeMerging:    c.Jobs.Merging.profile(),
	}
}

func (c JobTypeConfig) profile() jobmanager.Profile {
	p := jobmanager.Profile{
		Command:            c.Command,
		EstimatedTotal:     c.EstimatedTotal,
		PublishInterval:    c.PublishInterval,
		PublishOnProgress:  c.PublishOnProgress,
		RefineEstimate:     c.RefineEstimate,
		FillOnComplete:     c.FillOnComplete,
		Dedup:              c.Dedup,
		CompletedRetention: c.CompletedRetention,
		FailedRetention:    c.FailedRetention,
	}

	limits := &cgroups.ResourceLimits{
		CPUMaxPercent:  c.CPUMaxPercent,
		MemoryMaxBytes: c.MemoryMaxBytes,
		PidsMax:        c.PidsMax,
	}

	if !limits.IsZero() {
		p.Limits = limits
	}

	return p
}
