// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The two pieces with real algorithmic weight live here: the Broker, which
// decides between an in-process data access service and a host process of
// the other word size, and the Resampler, which turns interval log rows into
// fixed-step depth series.
package services
