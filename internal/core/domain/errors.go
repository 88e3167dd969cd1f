package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a query returned no rows where at least one is required.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Session Errors.

	// ErrNotConfigured indicates Open was called before connection parameters were set.
	ErrNotConfigured = errors.New("connection not configured")

	// ErrSessionNotOpen indicates a query was issued outside an open session.
	ErrSessionNotOpen = errors.New("session not open")

	// ErrSurveyOutOfRange indicates a survey station with an impossible angle.
	ErrSurveyOutOfRange = errors.New("survey angle out of range")

	// ErrIntervalOrder indicates interval rows that are not sorted by ascending top.
	ErrIntervalOrder = errors.New("interval rows out of order")

	// Broker Errors.

	// ErrLaunchFailed indicates the host process could not be started.
	ErrLaunchFailed = errors.New("error while starting host")

	// ErrHostNotResponding indicates the host did not become ready in time.
	ErrHostNotResponding = errors.New("host not responding")

	// ErrArchitectureMismatch indicates neither the local nor the remote
	// candidate matches the database client architecture.
	ErrArchitectureMismatch = errors.New("architecture mismatch")

	// ErrUnknownArchitecture indicates the client library architecture
	// could not be determined from the probe output.
	ErrUnknownArchitecture = errors.New("unknown client architecture")

	// ErrProbeFailed indicates the architecture probe command could not run.
	ErrProbeFailed = errors.New("architecture probe failed")

	// Transport Errors.

	// ErrEndpointInUse indicates a service is already published at an endpoint.
	ErrEndpointInUse = errors.New("endpoint already in use")

	// ErrRemote indicates a failure reported by the remote host that has
	// no more specific classification.
	ErrRemote = errors.New("remote call failed")
)
