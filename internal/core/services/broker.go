package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driving"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// Ensure Broker implements the interface.
var _ driving.ServiceBroker = (*Broker)(nil)

// HostExecutableBase is the file name prefix of the host executables.
const HostExecutableBase = "finderbridge-host"

// HostExecutableName returns the host executable built for a word size.
func HostExecutableName(size domain.WordSize) string {
	name := HostExecutableBase + "_" + size.Suffix()
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// Broker resolves and caches the data access service handle.
//
// The local candidate is asked whether it fits the database client
// architecture. If it does, it is used in-process. Otherwise a host of the
// opposite word size is launched and a client stub connected to it. At most
// one handle is cached per Broker.
type Broker struct {
	newLocal     func() driven.DataAccessService
	launcher     driven.HostLauncher
	dialer       driven.RemoteDialer
	hostDir      string
	readyTimeout time.Duration
	wordSize     domain.WordSize
	newChannel   func() (string, error)

	mu      sync.Mutex
	handle  driven.DataAccessService
	remote  driven.RemoteService
	process driven.HostProcess
	arch    domain.Architecture
}

// NewBroker creates a broker.
// newLocal builds the in-process candidate; launcher and dialer are only
// used when that candidate reports an architecture mismatch.
func NewBroker(
	newLocal func() driven.DataAccessService,
	launcher driven.HostLauncher,
	dialer driven.RemoteDialer,
	settings domain.BrokerSettings,
) *Broker {
	timeout := settings.ReadyTimeout
	if timeout <= 0 {
		timeout = domain.DefaultReadyTimeout
	}
	return &Broker{
		newLocal:     newLocal,
		launcher:     launcher,
		dialer:       dialer,
		hostDir:      resolveHostDir(settings.HostDir),
		readyTimeout: timeout,
		wordSize:     domain.CurrentWordSize(),
		newChannel:   NewChannelIdentity,
	}
}

// resolveHostDir defaults to the directory of the running executable.
func resolveHostDir(dir string) string {
	if dir != "" {
		return dir
	}
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// Acquire returns the cached handle or resolves a new one.
func (b *Broker) Acquire(ctx context.Context) (driven.DataAccessService, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle != nil {
		return b.handle, nil
	}

	local := b.newLocal()
	compatible, err := local.ProbeArchitectureCompatible(ctx)
	if err != nil {
		return nil, fmt.Errorf("probe client architecture: %w", err)
	}

	arch := domain.ResolveArchitecture(compatible)
	logger.Debug("Client architecture resolved as %s for a %s caller", arch, b.wordSize)

	if arch == domain.Native {
		b.handle = local
		b.arch = arch
		return local, nil
	}

	remote, proc, err := b.launchHost(ctx)
	if err != nil {
		return nil, err
	}

	b.handle = remote
	b.remote = remote
	b.process = proc
	b.arch = arch
	return remote, nil
}

// launchHost starts the opposite-architecture host and connects to it.
// Any failure after the process started kills it again.
func (b *Broker) launchHost(ctx context.Context) (driven.RemoteService, driven.HostProcess, error) {
	hostSize := b.wordSize.Opposite()
	exe := filepath.Join(b.hostDir, HostExecutableName(hostSize))

	channel, err := b.newChannel()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrLaunchFailed, err)
	}

	logger.Info("Launching %s host %s on channel %s", hostSize, exe, channel)
	proc, err := b.launcher.Launch(ctx, exe, channel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", domain.ErrLaunchFailed, exe, err)
	}

	if err := proc.WaitReady(b.readyTimeout); err != nil {
		killHost(proc)
		if errors.Is(err, domain.ErrHostNotResponding) {
			return nil, nil, fmt.Errorf("%s: %w", exe, err)
		}
		return nil, nil, fmt.Errorf("%w: %s: %w", domain.ErrLaunchFailed, exe, err)
	}
	logger.Debug("Host pid %d ready", proc.Pid())

	remote, err := b.dialer.Dial(ctx, channel)
	if err != nil {
		killHost(proc)
		return nil, nil, fmt.Errorf("connect to host on %s: %w", channel, err)
	}

	compatible, err := remote.ProbeArchitectureCompatible(ctx)
	if err == nil && !compatible {
		err = fmt.Errorf("%w: client library fits neither %s nor %s",
			domain.ErrArchitectureMismatch, b.wordSize, hostSize)
	}
	if err != nil {
		_ = remote.Release()
		killHost(proc)
		return nil, nil, fmt.Errorf("probe host architecture: %w", err)
	}

	return remote, proc, nil
}

func killHost(proc driven.HostProcess) {
	if err := proc.Kill(); err != nil {
		logger.Warn("Failed to kill host pid %d: %v", proc.Pid(), err)
	}
}

// Terminate releases the cached handle and kills the host, if one was spawned.
// The remote session is closed before the kill. The cache is cleared even
// when a step fails; the failures are returned joined.
func (b *Broker) Terminate(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	remote, proc := b.remote, b.process
	b.handle, b.remote, b.process = nil, nil, nil

	if proc == nil {
		return nil
	}

	var errs []error
	if remote != nil {
		if err := remote.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close remote session: %w", err))
		}
		if err := remote.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release host connection: %w", err))
		}
	}
	if err := proc.Kill(); err != nil {
		errs = append(errs, fmt.Errorf("kill host pid %d: %w", proc.Pid(), err))
	}

	logger.Info("Host pid %d terminated", proc.Pid())
	return errors.Join(errs...)
}

// Architecture reports how the cached handle was resolved.
func (b *Broker) Architecture() (domain.Architecture, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.arch, b.handle != nil
}
