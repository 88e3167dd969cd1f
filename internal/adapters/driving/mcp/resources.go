package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusURI is the resource describing the running host.
const StatusURI = "finder://status"

// Status is the content of the status resource.
type Status struct {
	Channel     string    `json:"channel"`
	Pid         int       `json:"pid"`
	SessionOpen bool      `json:"session_open"`
	StartedAt   time.Time `json:"started_at"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         StatusURI,
		Name:        "status",
		Description: "Host process and session state",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleStatusResource reports the host pid and whether a session is open.
func (s *Server) handleStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	status := Status{
		Channel:     s.ports.Channel,
		Pid:         os.Getpid(),
		SessionOpen: s.isOpen(),
		StartedAt:   s.startedAt,
	}

	data, err := json.Marshal(status)
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
