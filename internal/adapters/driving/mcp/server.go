package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server publishes one data access service as MCP tools.
// Every session shares the same service instance.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu        sync.Mutex
	open      bool
	startedAt time.Time
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "finderbridge-host",
		Version: Version,
	}

	s := &Server{
		ports:     ports,
		server:    mcp.NewServer(impl, nil),
		startedAt: time.Now(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Connect serves a single session over t.
// The unix socket endpoint uses Serve instead.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func (s *Server) setOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

func (s *Server) isOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
