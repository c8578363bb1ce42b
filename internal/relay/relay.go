// Package relay forwards job Events to external brokers so observers outside
// the process can follow job progress.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nixpig/slideworker/internal/jobmanager"
)

// sendTimeout bounds a single delivery so one stalled broker cannot hold up
// the others for long.
const sendTimeout = 5 * time.Second

// Sink delivers Events to one broker.
type Sink interface {
	Name() string
	Send(ctx context.Context, e jobmanager.Event) error
	Close() error
}

// Relay copies every Event from a Subscription to its Sinks.
type Relay struct {
	sinks  []Sink
	logger *slog.Logger
}

func New(logger *slog.Logger, sinks ...Sink) *Relay {
	return &Relay{sinks: sinks, logger: logger}
}

// Run forwards Events until ctx is done or sub is closed. Delivery failures
// are logged and skipped.
func (r *Relay) Run(ctx context.Context, sub *jobmanager.Subscription) {
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case e, ok := <-sub.Events():
			if !ok {
				return
			}

			r.forward(ctx, e)
		}
	}
}

func (r *Relay) forward(ctx context.Context, e jobmanager.Event) {
	for _, s := range r.sinks {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		err := s.Send(sendCtx, e)
		cancel()

		if err != nil {
			r.logger.Warn("failed to relay event", "sink", s.Name(), "id", e.ID, "err", err)
		}
	}
}

// Close closes every Sink.
func (r *Relay) Close() error {
	var errs []error

	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// message is the wire form of an Event on every broker.
type message struct {
	Event string            `json:"event"`
	ID    string            `json:"job_id"`
	Job   jobmanager.Record `json:"status"`
}

// Encode returns the wire form of e shared by every broker and the
// WebSocket channel.
func Encode(e jobmanager.Event) ([]byte, error) {
	return json.Marshal(message{
		Event: jobmanager.EventJobUpdate,
		ID:    e.ID,
		Job:   e.Job,
	})
}
