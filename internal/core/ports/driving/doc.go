// Package driving provides interfaces for external actors (primary/inbound
// ports). HTTP and CLI adapters invoke the core through these interfaces.
package driving
