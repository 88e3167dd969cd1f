// Command finderbridge-host serves the Finder data access service to a
// finderbridge process of the other word size.
//
// Usage:
//
//	finderbridge-host_x32 [channel]
//
// The host publishes the service on a unix socket named after the channel
// (default "finder"), prints "READY <channel>" on stdout and serves until it
// is killed. It reads no configuration; the client configures each session.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/finderbridge/internal/adapters/driven/finder"
	hostmcp "github.com/custodia-labs/finderbridge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/logger"
)

const defaultChannel = "finder"

func main() {
	setupLogging()

	if err := run(channelFromArgs(os.Args[1:])); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// setupLogging tags host lines and keeps the host quiet: only errors reach
// the stderr it shares with the broker.
func setupLogging() {
	logger.SetPrefix("host")
	logger.SetVerbose(false)
}

// channelFromArgs returns the channel argument or the default channel.
func channelFromArgs(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return defaultChannel
}

func run(channel string) error {
	server, err := hostmcp.NewServer(&hostmcp.Ports{
		Service: finder.NewService(domain.ClientSettings{}),
		Channel: channel,
	})
	if err != nil {
		return err
	}

	ln, err := hostmcp.Listen(channel)
	if err != nil {
		return fmt.Errorf("publishing %s: %w", channel, err)
	}
	defer ln.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving %s on %s", channel, hostmcp.SocketPath(channel))
	if _, err := fmt.Fprintln(os.Stdout, hostmcp.ReadyLine(channel)); err != nil {
		return fmt.Errorf("announcing ready: %w", err)
	}
	return server.Serve(ctx, ln)
}
