package jobmanager

import (
	"fmt"
	"strings"
	"time"

	"github.com/nixpig/slideworker/internal/jobmanager/cgroups"
)

// JobType identifies which external workload a job runs.
type JobType int

const (
	JobTypeUnknown JobType = iota
	JobTypePatching
	JobTypePrediction
	JobTypeMerging
)

var jobTypes = []string{
	"unknown",
	"patching",
	"prediction",
	"merging",
}

// JobTypes returns every runnable JobType.
func JobTypes() []JobType {
	return []JobType{JobTypePatching, JobTypePrediction, JobTypeMerging}
}

func (t JobType) String() string {
	if int(t) < 0 || int(t) >= len(jobTypes) {
		return jobTypes[0]
	}

	return jobTypes[t]
}

func (t JobType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *JobType) UnmarshalText(text []byte) error {
	parsed, err := ParseJobType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// ParseJobType returns the JobType named s, ignoring case.
func ParseJobType(s string) (JobType, error) {
	for _, t := range JobTypes() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}

	return JobTypeUnknown, fmt.Errorf("unknown job type %q", s)
}

// Profile is the per-JobType execution and publishing policy.
type Profile struct {
	// Command is the worker program and its leading arguments. The artifact
	// path is appended as the last argument.
	Command []string

	// EstimatedTotal is the advisory runtime reported before any progress is
	// known. It is never enforced.
	EstimatedTotal time.Duration

	// PublishInterval is the minimum gap between output-driven broadcasts.
	PublishInterval time.Duration

	// PublishOnProgress broadcasts on every parsed progress line regardless
	// of PublishInterval.
	PublishOnProgress bool

	// RefineEstimate re-derives EstimatedTotal from the observed progress
	// rate.
	RefineEstimate bool

	// FillOnComplete reports Progress as 100 once the worker exits
	// successfully, whatever it last printed.
	FillOnComplete bool

	// Dedup removes existing jobs of the same type and target on submission.
	Dedup bool

	// CompletedRetention and FailedRetention set how long a terminal job
	// stays queryable.
	CompletedRetention time.Duration
	FailedRetention    time.Duration

	// Limits are applied to the worker when a cgroup root is configured.
	Limits *cgroups.ResourceLimits
}

// DefaultProfiles returns the stock policy for each JobType.
func DefaultProfiles() map[JobType]Profile {
	return map[JobType]Profile{
		JobTypePatching: {
			Command:            []string{"python", "patch.py"},
			EstimatedTotal:     600 * time.Second,
			PublishInterval:    2 * time.Second,
			CompletedRetention: time.Hour,
			FailedRetention:    5 * time.Hour,
		},
		JobTypePrediction: {
			Command:            []string{"python", "predict.py"},
			EstimatedTotal:     7200 * time.Second,
			PublishInterval:    time.Second,
			Dedup:              true,
			CompletedRetention: time.Hour,
			FailedRetention:    5 * time.Hour,
		},
		JobTypeMerging: {
			Command:            []string{"python", "merge.py"},
			EstimatedTotal:     3000 * time.Second,
			PublishInterval:    2 * time.Second,
			PublishOnProgress:  true,
			RefineEstimate:     true,
			FillOnComplete:     true,
			CompletedRetention: time.Hour,
			FailedRetention:    5 * time.Hour,
		},
	}
}

func (p Profile) validate() error {
	if len(p.Command) == 0 || p.Command[0] == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if p.CompletedRetention < 0 || p.FailedRetention < 0 {
		return fmt.Errorf("retention cannot be negative")
	}

	return nil
}
