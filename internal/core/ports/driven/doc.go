// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core services depend only on these
// interfaces; concrete implementations live under internal/adapters/driven.
package driven
