// Package driving defines the interfaces the CLI uses to reach core services:
// the ServiceBroker that hands out a data access handle and the
// WellImporter that runs batch imports on top of it.
//
// Implementations live in internal/core/services.
package driving
