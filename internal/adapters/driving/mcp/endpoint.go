package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// ServicePath is the well-known HTTP path of the published service.
const ServicePath = "/finder.rem"

// ReadyPrefix starts the line a host prints once its endpoint is bound.
const ReadyPrefix = "READY"

// SocketPath returns the unix socket of the endpoint for channel.
func SocketPath(channel string) string {
	return filepath.Join(os.TempDir(), "finderbridge-"+channel+".sock")
}

// ReadyLine returns the line announcing that channel is being served.
func ReadyLine(channel string) string {
	return ReadyPrefix + " " + channel
}

// published guards against two services on one endpoint in this process.
var published = struct {
	sync.Mutex
	paths map[string]struct{}
}{paths: make(map[string]struct{})}

// Listener is a bound endpoint. Close releases the socket file.
type Listener struct {
	net.Listener
	path string
	once sync.Once
}

// Close stops listening and releases the endpoint.
func (l *Listener) Close() error {
	var err error
	l.once.Do(func() {
		err = l.Listener.Close()
		_ = os.Remove(l.path)
		published.Lock()
		delete(published.paths, l.path)
		published.Unlock()
	})
	return err
}

// Listen binds the endpoint of channel.
// Binding an endpoint that is already served fails with domain.ErrEndpointInUse.
// A socket file left behind by a dead host is replaced.
func Listen(channel string) (*Listener, error) {
	path := SocketPath(channel)

	published.Lock()
	defer published.Unlock()
	if _, taken := published.paths[path]; taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrEndpointInUse, path)
	}

	if _, err := os.Stat(path); err == nil {
		conn, dialErr := net.DialTimeout("unix", path, time.Second)
		if dialErr == nil {
			conn.Close()
			return nil, fmt.Errorf("%w: %s", domain.ErrEndpointInUse, path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("removing stale socket: %w", err)
		}
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", path, err)
	}
	published.paths[path] = struct{}{}
	return &Listener{Listener: ln, path: path}, nil
}

// Serve answers streamable HTTP sessions on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(ServicePath, mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil))

	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
