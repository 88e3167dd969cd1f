package driven

import (
	"context"
	"time"
)

// HostLauncher starts host processes.
type HostLauncher interface {
	// Launch starts executable with channel as its only argument.
	// The child inherits the caller's working directory.
	Launch(ctx context.Context, executable, channel string) (HostProcess, error)
}

// HostProcess is a running host.
type HostProcess interface {
	// WaitReady blocks until the host reports it is serving, the host exits,
	// or timeout elapses.
	WaitReady(timeout time.Duration) error

	// Kill terminates the host. Killing an already terminated host is a no-op.
	Kill() error

	// Pid returns the operating system process id.
	Pid() int
}
