package jobmanager

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"slices"
	"sync"
	"time"

	"github.com/nixpig/slideworker/internal/jobmanager/cgroups"
	"golang.org/x/time/rate"
)

const (
	// maxLineBytes is the longest worker output line accepted before the
	// stream is treated as failed.
	maxLineBytes = 1024 * 1024

	// waitDelay is how long output is still read after cancellation. Past
	// it the pipes are closed, which releases descendants that left the
	// worker's process group and still hold them.
	waitDelay = 5 * time.Second
)

// monitor owns one worker process and is the only writer of its job's
// progress, log and status fields while it runs.
type monitor struct {
	id      string
	path    string
	profile Profile

	registry    *Registry
	broadcaster *Broadcaster
	logger      *slog.Logger
	now         func() time.Time
	cgroupRoot  string

	outputLimiter *rate.Limiter
	errorLimiter  *rate.Limiter

	// mu serialises mutate-then-publish so Events for this job are delivered
	// in the order the mutations were committed.
	mu sync.Mutex
}

func (m *Manager) newMonitor(rec Record, path string, profile Profile) *monitor {
	return &monitor{
		id:            rec.ID,
		path:          path,
		profile:       profile,
		registry:      m.registry,
		broadcaster:   m.broadcaster,
		logger:        m.logger.With("id", rec.ID, "type", rec.Type.String()),
		now:           m.now,
		cgroupRoot:    m.cgroupRoot,
		outputLimiter: every(profile.PublishInterval),
		errorLimiter:  every(m.errorPublishInterval),
	}
}

func every(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Every(interval), 1)
}

// run spawns the worker and follows it to a terminal status. Every failure is
// recorded on the job; nothing is returned to the submitter.
func (m *monitor) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.fail(fmt.Errorf("monitor panic: %v", r))
		}
	}()

	cmd, cleanup, err := m.command(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	defer cleanup()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		m.fail(&LaunchError{Program: cmd.Path, Err: err})
		return
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		m.fail(&LaunchError{Program: cmd.Path, Err: err})
		return
	}

	if err := cmd.Start(); err != nil {
		m.fail(&LaunchError{Program: cmd.Path, Err: err})
		return
	}

	m.logger.Debug("worker started", "pid", cmd.Process.Pid, "path", m.path)

	m.update(func(r *Record) error {
		return r.transition(StatusRunning)
	}, m.always)

	drained := make(chan struct{})
	go closeAfterCancel(ctx, drained, stdout, stderr)

	var (
		wg        sync.WaitGroup
		stderrErr error
	)

	wg.Go(func() {
		stderrErr = m.drain(stderr, m.handleErrorLine)
	})

	stdoutErr := m.drain(stdout, m.handleOutputLine)

	wg.Wait()
	close(drained)

	m.finish(ctx, cmd, errors.Join(stdoutErr, stderrErr), cmd.Wait())
}

func (m *monitor) command(ctx context.Context) (*exec.Cmd, func(), error) {
	program := m.profile.Command[0]
	args := append(slices.Clone(m.profile.Command[1:]), m.path)

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)

	cleanup := func() {}

	if m.cgroupRoot == "" || m.profile.Limits.IsZero() {
		return cmd, cleanup, nil
	}

	cg, err := cgroups.Create(m.cgroupRoot, m.id, m.profile.Limits)
	if err != nil {
		return nil, cleanup, &LaunchError{Program: program, Err: err}
	}

	if err := placeInCgroup(cmd, cg.FD()); err != nil {
		cg.Destroy()
		return nil, cleanup, &LaunchError{Program: program, Err: err}
	}

	cleanup = func() {
		if err := cg.Destroy(); err != nil {
			m.logger.Warn("destroy cgroup", "err", err)
		}
	}

	return cmd, cleanup, nil
}

// closeAfterCancel closes pipes still being drained waitDelay after ctx is
// done. The reads then fail and the monitor moves on to Wait.
func closeAfterCancel(ctx context.Context, drained <-chan struct{}, pipes ...io.Closer) {
	select {
	case <-drained:
		return
	case <-ctx.Done():
	}

	timer := time.NewTimer(waitDelay)
	defer timer.Stop()

	select {
	case <-drained:
	case <-timer.C:
		for _, p := range pipes {
			p.Close()
		}
	}
}

// drain feeds each line of r to handle. Whatever happens, r is read to EOF
// so the worker never blocks on a full pipe.
func (m *monitor) drain(r io.Reader, handle func(string)) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic handling worker output: %v", p)
		}

		io.Copy(io.Discard, r)
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		handle(scanner.Text())
	}

	return scanner.Err()
}

func (m *monitor) handleOutputLine(line string) {
	pct, ok, err := ParseProgress(line)
	if err != nil {
		m.logger.Warn("ignoring progress line", "line", line, "err", err)
	}

	m.update(func(r *Record) error {
		r.Output += line + "\n"

		if !ok {
			return nil
		}

		r.Progress = max(r.Progress, clampPercent(pct))

		if m.profile.RefineEstimate && r.Progress > 0 {
			r.EstimatedTotal = time.Duration(
				float64(r.Elapsed) * 100 / r.Progress,
			).Round(time.Second)
		}

		return nil
	}, func() bool {
		allowed := m.outputLimiter.AllowN(m.now(), 1)
		return allowed || (ok && m.profile.PublishOnProgress)
	})
}

func (m *monitor) handleErrorLine(line string) {
	m.update(func(r *Record) error {
		r.Errors += line + "\n"
		return nil
	}, func() bool {
		return m.errorLimiter.AllowN(m.now(), 1)
	})
}

func (m *monitor) finish(
	ctx context.Context,
	cmd *exec.Cmd,
	streamErr error,
	waitErr error,
) {
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	var exitErr *exec.ExitError

	switch {
	case streamErr == nil && waitErr == nil:
		m.logger.Info("job completed")
		m.terminate(StatusCompleted, func(r *Record) {
			r.ExitCode = exitCode
		})

	case ctx.Err() != nil:
		m.failWith(fmt.Errorf("worker interrupted: %w", context.Cause(ctx)), exitCode)

	case streamErr != nil:
		m.failWith(fmt.Errorf("read worker output: %w", streamErr), exitCode)

	case errors.As(waitErr, &exitErr):
		m.logger.Info("job failed", "exit_code", exitCode)
		m.terminate(StatusFailed, func(r *Record) {
			r.ExitCode = exitCode
			r.Error = fmt.Sprintf("worker exited with code %d", exitCode)
		})

	default:
		m.failWith(fmt.Errorf("wait for worker: %w", waitErr), exitCode)
	}
}

func (m *monitor) fail(err error) {
	m.failWith(err, -1)
}

func (m *monitor) failWith(err error, exitCode int) {
	m.logger.Error("job failed", "err", err)

	m.terminate(StatusFailed, func(r *Record) {
		r.ExitCode = exitCode
		r.Error = err.Error()
		r.Errors += err.Error() + "\n"
	})
}

// terminate moves the job to a terminal status, stamps its retention deadline
// and publishes the final Event. A job that is already terminal is left
// untouched.
func (m *monitor) terminate(to Status, fn func(*Record)) {
	m.update(func(r *Record) error {
		if err := r.transition(to); err != nil {
			return err
		}

		fn(r)

		now := m.now()
		r.FinishedAt = &now

		retention := m.profile.FailedRetention
		if to == StatusCompleted {
			retention = m.profile.CompletedRetention

			if m.profile.FillOnComplete {
				r.Progress = 100
			}
		}

		if retention > 0 {
			expireAt := now.Add(retention)
			r.ExpireAt = &expireAt
		}

		return nil
	}, m.always)
}

// update commits fn to the job and publishes the result if publish agrees.
// The publish happens after the registry lock is released.
func (m *monitor) update(fn func(*Record) error, publish func() bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.registry.Mutate(m.id, fn)
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			m.logger.Debug("job removed while worker running")
		} else {
			m.logger.Warn("update job", "err", err)
		}

		return
	}

	if publish() {
		m.broadcaster.Publish(Event{ID: m.id, Job: rec})
	}
}

// always publishes and restarts the output cadence.
func (m *monitor) always() bool {
	m.outputLimiter.AllowN(m.now(), 1)
	return true
}
