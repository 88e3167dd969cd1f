package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names. One tool per data access operation.
const (
	ToolProbeArchitecture = "probe_architecture"
	ToolConfigure         = "configure"
	ToolOpen              = "open"
	ToolClose             = "close"
	ToolProject           = "project"
	ToolServerVersion     = "server_version"
	ToolListWellHeaders   = "list_well_headers"
	ToolDirectionalSurvey = "get_directional_survey"
	ToolLogIntervals      = "get_log_intervals"
	ToolLatestWellState   = "get_latest_well_state"
	ToolFormationTops     = "get_formation_tops"
)

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolProbeArchitecture,
		Description: "Report whether the database client fits this host's word size",
	}, s.handleProbe)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolConfigure,
		Description: "Set connection parameters for the next open",
	}, s.handleConfigure)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolOpen,
		Description: "Connect to the well database",
	}, s.handleOpen)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolClose,
		Description: "Disconnect from the well database",
	}, s.handleClose)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolProject,
		Description: "Return the configured project schema",
	}, s.handleProject)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolServerVersion,
		Description: "Return the database server banner",
	}, s.handleServerVersion)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolListWellHeaders,
		Description: "List headers of wells matching the well filter",
	}, s.handleListWellHeaders)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolDirectionalSurvey,
		Description: "Return the preferred directional survey of a well",
	}, s.handleDirectionalSurvey)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolLogIntervals,
		Description: "Return interval log rows of a well per column",
	}, s.handleLogIntervals)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolLatestWellState,
		Description: "Return the latest state record of each listed well",
	}, s.handleLatestWellState)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolFormationTops,
		Description: "Return layer ranges of each listed well",
	}, s.handleFormationTops)
}

func (s *Server) handleProbe(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, ProbeOutput, error) {
	ok, err := s.ports.Service.ProbeArchitectureCompatible(ctx)
	if err != nil {
		return nil, ProbeOutput{}, toolError(err)
	}
	return nil, ProbeOutput{Compatible: ok}, nil
}

func (s *Server) handleConfigure(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, Ack, error) {
	if err := s.ports.Service.Configure(ctx, input.Decode()); err != nil {
		return nil, Ack{}, toolError(err)
	}
	return nil, Ack{OK: true}, nil
}

func (s *Server) handleOpen(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, Ack, error) {
	if err := s.ports.Service.Open(ctx); err != nil {
		return nil, Ack{}, toolError(err)
	}
	s.setOpen(true)
	return nil, Ack{OK: true}, nil
}

func (s *Server) handleClose(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, Ack, error) {
	if err := s.ports.Service.Close(ctx); err != nil {
		return nil, Ack{}, toolError(err)
	}
	s.setOpen(false)
	return nil, Ack{OK: true}, nil
}

func (s *Server) handleProject(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, TextOutput, error) {
	project, err := s.ports.Service.Project(ctx)
	if err != nil {
		return nil, TextOutput{}, toolError(err)
	}
	return nil, TextOutput{Value: project}, nil
}

func (s *Server) handleServerVersion(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, TextOutput, error) {
	version, err := s.ports.Service.ServerVersion(ctx)
	if err != nil {
		return nil, TextOutput{}, toolError(err)
	}
	return nil, TextOutput{Value: version}, nil
}

func (s *Server) handleListWellHeaders(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, WellHeadersOutput, error) {
	headers, err := s.ports.Service.ListWellHeaders(ctx)
	if err != nil {
		return nil, WellHeadersOutput{}, toolError(err)
	}
	return nil, EncodeWellHeaders(headers), nil
}

func (s *Server) handleDirectionalSurvey(ctx context.Context, _ *mcp.CallToolRequest, input UWIInput) (*mcp.CallToolResult, SurveyOutput, error) {
	points, err := s.ports.Service.GetDirectionalSurvey(ctx, input.UWI)
	if err != nil {
		return nil, SurveyOutput{}, toolError(err)
	}
	return nil, EncodeSurvey(points), nil
}

func (s *Server) handleLogIntervals(ctx context.Context, _ *mcp.CallToolRequest, input LogIntervalsInput) (*mcp.CallToolResult, LogIntervalsOutput, error) {
	columns, err := DecodeColumnSpec(input.Columns)
	if err != nil {
		return nil, LogIntervalsOutput{}, toolError(err)
	}
	intervals, err := s.ports.Service.GetLogIntervals(ctx, input.UWI, columns)
	if err != nil {
		return nil, LogIntervalsOutput{}, toolError(err)
	}
	return nil, EncodeLogIntervals(intervals), nil
}

func (s *Server) handleLatestWellState(ctx context.Context, _ *mcp.CallToolRequest, input UWIListInput) (*mcp.CallToolResult, WellStatesOutput, error) {
	states, err := s.ports.Service.GetLatestWellState(ctx, input.UWIs)
	if err != nil {
		return nil, WellStatesOutput{}, toolError(err)
	}
	return nil, EncodeWellStates(states), nil
}

func (s *Server) handleFormationTops(ctx context.Context, _ *mcp.CallToolRequest, input UWIListInput) (*mcp.CallToolResult, FormationTopsOutput, error) {
	tops, err := s.ports.Service.GetFormationTops(ctx, input.UWIs)
	if err != nil {
		return nil, FormationTopsOutput{}, toolError(err)
	}
	return nil, EncodeFormationTops(tops), nil
}
