// Package cli wires the cobra command tree. Services are injected by the
// entry point before Execute runs; commands fail cleanly when their
// service is not configured.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperbox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperbox-cli/internal/logger"
)

// version is set by the entry point from build information.
var version = "dev"

// Injected services.
var (
	watchService driving.WatchService
	uploader     driven.Uploader
	serveAddr    string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "paperbox",
	Short: "Batch ingestion pipeline for academic PDFs",
	Long: `Paperbox watches a cloud-drive inbox for academic PDFs and, on each
tick, extracts their text, derives bibliographic metadata, records it
into a spreadsheet ledger and a knowledge base, and relocates the files
to a processed folder.

Ticks are driven externally (cron, workflow engine); paperbox keeps no
state between invocations.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetWatchService injects the watch service used by tick and serve.
func SetWatchService(svc driving.WatchService) {
	watchService = svc
}

// SetUploader injects the large-binary uploader used by the upload command.
func SetUploader(u driven.Uploader) {
	uploader = u
}

// SetServeAddr sets the default listen address for the serve command.
func SetServeAddr(addr string) {
	if addr != "" {
		serveAddr = addr
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
