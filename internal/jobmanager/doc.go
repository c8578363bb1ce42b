// Package jobmanager runs external workloads as asynchronous jobs and
// publishes their progress.
//
// A Manager validates a submission, records a Job in its Registry and hands
// the worker process to a monitor goroutine. The monitor parses progress
// markers out of the worker's stdout, collects stderr and publishes snapshots
// of the job on a Broadcaster at a per-type cadence. Terminal jobs carry an
// expiry and are evicted lazily on Query or in bulk by the sweeper.
package jobmanager
