package jobmanager

import (
	"encoding/json"
	"time"
)

// Record is a snapshot of a tracked job. The Registry hands out copies, so a
// Record can be read freely without further synchronisation.
type Record struct {
	ID     string
	Type   JobType
	Target string

	Status   Status
	Progress float64
	ExitCode int

	// Output and Errors accumulate the worker's stdout and stderr lines.
	Output string
	Errors string

	// Error holds the message of a launch or monitoring failure.
	Error string

	StartedAt      time.Time
	Elapsed        time.Duration
	EstimatedTotal time.Duration
	FinishedAt     *time.Time
	ExpireAt       *time.Time

	// Version increases by one on every committed mutation.
	Version uint64
}

// ElapsedSeconds returns Elapsed in whole seconds.
func (r Record) ElapsedSeconds() int64 {
	return int64(r.Elapsed / time.Second)
}

// EstimatedTotalSeconds returns EstimatedTotal in whole seconds.
func (r Record) EstimatedTotalSeconds() int64 {
	return int64(r.EstimatedTotal / time.Second)
}

// transition moves the record to status to, or returns an InvalidStateError
// if the state machine does not allow it.
func (r *Record) transition(to Status) error {
	if !canTransition(r.Status, to) {
		return NewInvalidStateError(r.Status, to)
	}

	r.Status = to

	return nil
}

func (r Record) clone() Record {
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		r.FinishedAt = &t
	}

	if r.ExpireAt != nil {
		t := *r.ExpireAt
		r.ExpireAt = &t
	}

	return r
}

type recordJSON struct {
	ID                    string     `json:"id"`
	Type                  JobType    `json:"job_type"`
	Target                string     `json:"target"`
	Status                Status     `json:"status"`
	Progress              float64    `json:"progress"`
	ExitCode              int        `json:"exit_code"`
	Output                string     `json:"output_log"`
	Errors                string     `json:"error_log"`
	Error                 string     `json:"error,omitempty"`
	StartedAt             time.Time  `json:"started_at"`
	ElapsedSeconds        int64      `json:"elapsed_seconds"`
	EstimatedTotalSeconds int64      `json:"estimated_total_seconds"`
	FinishedAt            *time.Time `json:"finished_at,omitempty"`
	ExpireAt              *time.Time `json:"expire_at,omitempty"`
	Version               uint64     `json:"version"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:                    r.ID,
		Type:                  r.Type,
		Target:                r.Target,
		Status:                r.Status,
		Progress:              r.Progress,
		ExitCode:              r.ExitCode,
		Output:                r.Output,
		Errors:                r.Errors,
		Error:                 r.Error,
		StartedAt:             r.StartedAt,
		ElapsedSeconds:        r.ElapsedSeconds(),
		EstimatedTotalSeconds: r.EstimatedTotalSeconds(),
		FinishedAt:            r.FinishedAt,
		ExpireAt:              r.ExpireAt,
		Version:               r.Version,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var v recordJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*r = Record{
		ID:             v.ID,
		Type:           v.Type,
		Target:         v.Target,
		Status:         v.Status,
		Progress:       v.Progress,
		ExitCode:       v.ExitCode,
		Output:         v.Output,
		Errors:         v.Errors,
		Error:          v.Error,
		StartedAt:      v.StartedAt,
		Elapsed:        time.Duration(v.ElapsedSeconds) * time.Second,
		EstimatedTotal: time.Duration(v.EstimatedTotalSeconds) * time.Second,
		FinishedAt:     v.FinishedAt,
		ExpireAt:       v.ExpireAt,
		Version:        v.Version,
	}

	return nil
}
