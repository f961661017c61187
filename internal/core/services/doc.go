// Package services implements the core pipeline logic: the per-tick batch
// orchestrator and the metadata generation service. Services depend only on
// the driven ports; adapters are wired in at startup.
package services
