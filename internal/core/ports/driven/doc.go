// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DataAccessService: Stateful session against the well database
//   - ModelSink: Receives imported headers, surveys, logs, states and tops
//   - ConfigStore: Application configuration
//
// # Cross-Architecture Interfaces
//
// Only used when the database client needs a host of the other word size:
//
//   - HostLauncher / HostProcess: Start, await and kill the host process
//   - RemoteDialer / RemoteService: Client stub for the host's published service
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ImportMetrics: Batch counters exported after an import
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
