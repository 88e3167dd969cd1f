package finder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

// probeTimeout bounds the client banner command.
const probeTimeout = 5 * time.Second

// ProbeArchitectureCompatible reports whether the database client library
// has the word size of this process.
func (s *Service) ProbeArchitectureCompatible(ctx context.Context) (bool, error) {
	size, err := s.probe(ctx)
	if err != nil {
		return false, err
	}
	compatible := size == domain.CurrentWordSize()
	logger.Debug("Database client is %s, process is %s", size, domain.CurrentWordSize())
	return compatible, nil
}

// probeClient determines the client word size from settings.
// A pinned architecture wins; otherwise the probe command's banner is
// parsed. Without either the driver is linked in and always native.
func (s *Service) probeClient(ctx context.Context) (domain.WordSize, error) {
	if s.client.Arch != "" {
		return domain.ParseWordSize(s.client.Arch)
	}
	if s.client.ProbeCommand == "" {
		return domain.CurrentWordSize(), nil
	}

	out, err := runProbe(ctx, s.client.ProbeCommand)
	if err != nil {
		return 0, err
	}
	return parseBanner(out)
}

func runProbe(ctx context.Context, command string) (string, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return "", fmt.Errorf("%w: invalid probe command %q", domain.ErrProbeFailed, command)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s timed out after %s", domain.ErrProbeFailed, args[0], probeTimeout)
		}
		return "", fmt.Errorf("%w: %s: %w", domain.ErrProbeFailed, args[0], err)
	}
	return string(out), nil
}

// parseBanner finds the word size announced in a client banner.
func parseBanner(banner string) (domain.WordSize, error) {
	has32 := strings.Contains(banner, "32-bit")
	has64 := strings.Contains(banner, "64-bit")
	switch {
	case has64 && !has32:
		return domain.WordSize64, nil
	case has32 && !has64:
		return domain.WordSize32, nil
	default:
		return 0, fmt.Errorf("%w: banner %q", domain.ErrUnknownArchitecture, strings.TrimSpace(banner))
	}
}
