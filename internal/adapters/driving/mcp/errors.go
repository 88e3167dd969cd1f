// Package mcp publishes a data access service to client stubs in other
// processes. Every contract operation is an MCP tool served over streamable
// HTTP on a unix socket; the same package defines the wire types the client
// stub decodes.
package mcp

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/custodia-labs/finderbridge/internal/core/domain"
)

// ErrMissingService is returned when no data access service is provided.
var ErrMissingService = errors.New("mcp: data access service is required")

// Error codes carried in tool error text as "[code] message".
const (
	CodeNotFound            = "not_found"
	CodeInvalidInput        = "invalid_input"
	CodeNotConfigured       = "not_configured"
	CodeSessionNotOpen      = "session_not_open"
	CodeSurveyOutOfRange    = "survey_out_of_range"
	CodeUnknownArchitecture = "unknown_architecture"
	CodeProbeFailed         = "probe_failed"
	CodeInternal            = "internal"
)

var codeSentinels = []struct {
	code string
	err  error
}{
	{CodeNotFound, domain.ErrNotFound},
	{CodeInvalidInput, domain.ErrInvalidInput},
	{CodeNotConfigured, domain.ErrNotConfigured},
	{CodeSessionNotOpen, domain.ErrSessionNotOpen},
	{CodeSurveyOutOfRange, domain.ErrSurveyOutOfRange},
	{CodeUnknownArchitecture, domain.ErrUnknownArchitecture},
	{CodeProbeFailed, domain.ErrProbeFailed},
}

var codedMessage = regexp.MustCompile(`(?s)\[([a-z_]+)\] (.*)$`)

// ErrorCode classifies err for the wire.
func ErrorCode(err error) string {
	for _, cs := range codeSentinels {
		if errors.Is(err, cs.err) {
			return cs.code
		}
	}
	return CodeInternal
}

// toolError formats err so that DecodeError can rebuild it on the other side.
func toolError(err error) error {
	return fmt.Errorf("[%s] %s", ErrorCode(err), err.Error())
}

// RemoteError is an error reported by the host.
// It unwraps to the domain sentinel matching its code, or domain.ErrRemote.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap returns the domain sentinel for the code.
func (e *RemoteError) Unwrap() error {
	for _, cs := range codeSentinels {
		if cs.code == e.Code {
			return cs.err
		}
	}
	return domain.ErrRemote
}

// DecodeError rebuilds a typed error from tool error text.
// Transport prefixes in front of the code are dropped.
func DecodeError(text string) error {
	m := codedMessage.FindStringSubmatch(text)
	if m == nil {
		return &RemoteError{Code: CodeInternal, Message: text}
	}
	return &RemoteError{Code: m[1], Message: m[2]}
}
