// Package process starts and supervises host processes.
//
// A host announces that it is serving by printing a ready line on stdout.
// The launcher watches for that line, forwards any other output to the
// debug log and reaps the child when it exits.
package process

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// Ensure Launcher and Process implement the interfaces.
var (
	_ driven.HostLauncher = (*Launcher)(nil)
	_ driven.HostProcess  = (*Process)(nil)
)

// Launcher starts host executables.
type Launcher struct {
	readyPrefix string
	endpoint    func(channel string) string
}

// NewLauncher creates a launcher that waits for lines starting with readyPrefix.
// endpoint maps a channel to the file the host binds; the file is removed once
// the host has been reaped, since a killed host cannot remove it itself.
// A nil endpoint leaves the filesystem alone.
func NewLauncher(readyPrefix string, endpoint func(channel string) string) *Launcher {
	return &Launcher{readyPrefix: readyPrefix, endpoint: endpoint}
}

// Launch starts executable with channel as its only argument.
// The child inherits the working directory, environment and stderr.
// ctx only bounds the start; the child outlives it.
func (l *Launcher) Launch(ctx context.Context, executable, channel string) (driven.HostProcess, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(executable, channel) //nolint:gosec // executable comes from the broker's host directory
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", executable, err)
	}

	p := &Process{
		cmd:    cmd,
		ready:  make(chan struct{}),
		exited: make(chan struct{}),
	}
	if l.endpoint != nil {
		p.endpointPath = l.endpoint(channel)
	}
	go p.supervise(stdout, l.readyPrefix+" "+channel)
	return p, nil
}

// Process is a running host.
type Process struct {
	cmd          *exec.Cmd
	endpointPath string

	ready     chan struct{}
	readyOnce sync.Once

	exited  chan struct{}
	exitErr error

	killOnce sync.Once
	killErr  error
}

// supervise scans stdout until the child closes it, then reaps the child.
func (p *Process) supervise(stdout io.Reader, readyLine string) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == readyLine {
			p.readyOnce.Do(func() { close(p.ready) })
			continue
		}
		logger.Debug("host %d: %s", p.Pid(), line)
	}
	// Drain whatever is left so the child never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, stdout)

	p.exitErr = p.cmd.Wait()
	close(p.exited)
}

// WaitReady blocks until the host prints its ready line, exits, or timeout elapses.
func (p *Process) WaitReady(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.ready:
		return nil
	case <-p.exited:
		// A ready line racing the exit still counts.
		select {
		case <-p.ready:
			return nil
		default:
		}
		if p.exitErr != nil {
			return fmt.Errorf("host exited before ready: %w", p.exitErr)
		}
		return errors.New("host exited before ready")
	case <-timer.C:
		return fmt.Errorf("%w after %s", domain.ErrHostNotResponding, timeout)
	}
}

// Kill terminates the host, waits until it is reaped and removes its
// endpoint file. Killing a host that already exited only removes the file.
func (p *Process) Kill() error {
	p.killOnce.Do(func() {
		select {
		case <-p.exited:
		default:
			if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				p.killErr = err
				return
			}
			<-p.exited
		}
		p.removeEndpoint()
	})
	return p.killErr
}

// removeEndpoint deletes the endpoint file left by the host. Best effort.
func (p *Process) removeEndpoint() {
	if p.endpointPath == "" {
		return
	}
	if err := os.Remove(p.endpointPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to remove host endpoint %s: %v", p.endpointPath, err)
	}
}

// Exited reports whether the host has exited and been reaped.
func (p *Process) Exited() bool {
	select {
	case <-p.exited:
		return true
	default:
		return false
	}
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}
