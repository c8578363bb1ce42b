package jobmanager

import "fmt"

type Status int

const (
	// StatusUnknown is the zero value for functions that return a (possibly
	// absent) Status.
	StatusUnknown Status = iota

	// StatusStarted indicates the job has been accepted and recorded but the
	// worker process has not been spawned yet.
	StatusStarted

	// StatusRunning indicates the worker process has been spawned and its
	// output is being monitored.
	StatusRunning

	// StatusCompleted indicates the worker process exited with code 0.
	StatusCompleted

	// StatusFailed indicates the worker process exited with a non-zero code,
	// could not be spawned, or monitoring failed.
	StatusFailed
)

// NOTE: This slice needs to be kept in sync with the Status values. The
// lowercase names are part of the wire format.
var statuses = []string{
	"unknown",
	"started",
	"running",
	"completed",
	"failed",
}

// String implements the Stringer interface for Status.
func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statuses) {
		return statuses[0]
	}

	return statuses[s]
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statuses {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}

	return fmt.Errorf("unknown status %q", text)
}

// canTransition reports whether from -> to is an edge of the job state
// machine: Started -> Running -> {Completed, Failed}, plus Started -> Failed
// when the worker cannot be launched.
func canTransition(from, to Status) bool {
	switch from {
	case StatusStarted:
		return to == StatusRunning || to == StatusFailed
	case StatusRunning:
		return to == StatusCompleted || to == StatusFailed
	default:
		return false
	}
}
