// Package remote implements the client stub of a data access service
// published by a host process of the other word size.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	hostmcp "github.com/custodia-labs/finderbridge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/finderbridge/internal/core/domain"
	"github.com/custodia-labs/finderbridge/internal/core/ports/driven"
)

// Ensure the stub and dialer implement the interfaces.
var (
	_ driven.RemoteService = (*Client)(nil)
	_ driven.RemoteDialer  = (*Dialer)(nil)
)

// Version is the client implementation version sent to the host.
const Version = "0.1.0"

// Dialer connects client stubs to hosts over their unix socket endpoints.
type Dialer struct{}

// NewDialer creates a dialer.
func NewDialer() *Dialer {
	return &Dialer{}
}

// Dial connects to the host serving channel.
func (d *Dialer) Dial(ctx context.Context, channel string) (driven.RemoteService, error) {
	path := hostmcp.SocketPath(channel)
	httpClient := &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var nd net.Dialer
				return nd.DialContext(ctx, "unix", path)
			},
		},
	}

	transport := &mcp.StreamableClientTransport{
		Endpoint:   "http://finderbridge" + hostmcp.ServicePath,
		HTTPClient: httpClient,
	}
	return Connect(ctx, transport)
}

// Client is a data access service whose calls run in a host process.
type Client struct {
	session *mcp.ClientSession
}

// Connect starts a client session over t.
func Connect(ctx context.Context, t mcp.Transport) (*Client, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "finderbridge", Version: Version}, nil)
	session, err := client.Connect(ctx, t, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to host: %w", err)
	}
	return &Client{session: session}, nil
}

// Release closes the connection to the host.
func (c *Client) Release() error {
	return c.session.Close()
}

// call invokes a tool and decodes its structured result into out.
func (c *Client) call(ctx context.Context, tool string, args, out any) error {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: tool, Arguments: args})
	if err != nil {
		return fmt.Errorf("%s: %w", tool, hostmcp.DecodeError(err.Error()))
	}
	if res.IsError {
		return hostmcp.DecodeError(firstText(res))
	}

	var data []byte
	if res.StructuredContent != nil {
		data, err = json.Marshal(res.StructuredContent)
		if err != nil {
			return fmt.Errorf("%s: re-encoding result: %w", tool, err)
		}
	} else {
		data = []byte(firstText(res))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decoding result: %w", tool, err)
	}
	return nil
}

func firstText(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

// ProbeArchitectureCompatible asks the host whether the client library fits it.
func (c *Client) ProbeArchitectureCompatible(ctx context.Context) (bool, error) {
	var out hostmcp.ProbeOutput
	if err := c.call(ctx, hostmcp.ToolProbeArchitecture, hostmcp.NoInput{}, &out); err != nil {
		return false, err
	}
	return out.Compatible, nil
}

// Configure sets the host's connection parameters.
func (c *Client) Configure(ctx context.Context, cfg domain.SessionConfig) error {
	var out hostmcp.Ack
	return c.call(ctx, hostmcp.ToolConfigure, hostmcp.EncodeSession(cfg), &out)
}

// Open opens the host's session.
func (c *Client) Open(ctx context.Context) error {
	var out hostmcp.Ack
	return c.call(ctx, hostmcp.ToolOpen, hostmcp.NoInput{}, &out)
}

// Close closes the host's session. The connection stays up until Release.
func (c *Client) Close(ctx context.Context) error {
	var out hostmcp.Ack
	return c.call(ctx, hostmcp.ToolClose, hostmcp.NoInput{}, &out)
}

// Project returns the host session's project schema.
func (c *Client) Project(ctx context.Context) (string, error) {
	var out hostmcp.TextOutput
	if err := c.call(ctx, hostmcp.ToolProject, hostmcp.NoInput{}, &out); err != nil {
		return "", err
	}
	return out.Value, nil
}

// ServerVersion returns the database banner seen by the host.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var out hostmcp.TextOutput
	if err := c.call(ctx, hostmcp.ToolServerVersion, hostmcp.NoInput{}, &out); err != nil {
		return "", err
	}
	return out.Value, nil
}

// ListWellHeaders lists well headers through the host.
func (c *Client) ListWellHeaders(ctx context.Context) ([]domain.WellHeader, error) {
	var out hostmcp.WellHeadersOutput
	if err := c.call(ctx, hostmcp.ToolListWellHeaders, hostmcp.NoInput{}, &out); err != nil {
		return nil, err
	}
	return out.Decode(), nil
}

// GetDirectionalSurvey fetches a survey through the host.
func (c *Client) GetDirectionalSurvey(ctx context.Context, uwi string) ([]domain.TrajectoryPoint, error) {
	var out hostmcp.SurveyOutput
	if err := c.call(ctx, hostmcp.ToolDirectionalSurvey, hostmcp.UWIInput{UWI: uwi}, &out); err != nil {
		return nil, err
	}
	return out.Decode(), nil
}

// GetLogIntervals fetches interval rows through the host.
func (c *Client) GetLogIntervals(ctx context.Context, uwi string, columns map[string]domain.LogKind) (map[string][]domain.IntervalRow, error) {
	var out hostmcp.LogIntervalsOutput
	input := hostmcp.LogIntervalsInput{UWI: uwi, Columns: hostmcp.EncodeColumnSpec(columns)}
	if err := c.call(ctx, hostmcp.ToolLogIntervals, input, &out); err != nil {
		return nil, err
	}
	return out.Decode(), nil
}

// GetLatestWellState fetches state records through the host.
func (c *Client) GetLatestWellState(ctx context.Context, uwis []string) ([]domain.WellState, error) {
	var out hostmcp.WellStatesOutput
	if err := c.call(ctx, hostmcp.ToolLatestWellState, hostmcp.UWIListInput{UWIs: nonNil(uwis)}, &out); err != nil {
		return nil, err
	}
	return out.Decode(), nil
}

// GetFormationTops fetches layer ranges through the host.
func (c *Client) GetFormationTops(ctx context.Context, uwis []string) ([]domain.FormationTop, error) {
	var out hostmcp.FormationTopsOutput
	if err := c.call(ctx, hostmcp.ToolFormationTops, hostmcp.UWIListInput{UWIs: nonNil(uwis)}, &out); err != nil {
		return nil, err
	}
	return out.Decode(), nil
}

// nonNil keeps empty lists from travelling as JSON null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
