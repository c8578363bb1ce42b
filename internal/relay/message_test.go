package relay_test

import (
	"encoding/json"
	"testing"

	"github.com/nixpig/slideworker/internal/jobmanager"
	"github.com/nixpig/slideworker/internal/relay"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	e := jobmanager.Event{
		ID: "abc",
		Job: jobmanager.Record{
			ID:       "abc",
			Type:     jobmanager.JobTypeMerging,
			Status:   jobmanager.StatusRunning,
			Progress: 12.5,
		},
	}

	payload, err := relay.Encode(e)
	if err != nil {
		t.Fatalf("expected not to receive error: got '%v'", err)
	}

	var got struct {
		Event  string `json:"event"`
		ID     string `json:"job_id"`
		Status struct {
			JobType  string  `json:"job_type"`
			Status   string  `json:"status"`
			Progress float64 `json:"progress"`
		} `json:"status"`
	}

	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("expected not to receive error: got '%v'", err)
	}

	if got.Event != "job_update" || got.ID != "abc" {
		t.Errorf("expected envelope: got '%s' '%s'", got.Event, got.ID)
	}

	if got.Status.JobType != "merging" || got.Status.Status != "running" || got.Status.Progress != 12.5 {
		t.Errorf("expected snapshot: got '%+v'", got.Status)
	}
}
