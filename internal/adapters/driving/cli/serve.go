package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperbox-cli/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tick endpoint over HTTP",
	Long: `Starts the HTTP server exposing POST /api/watch/tick for an external
scheduler. The drive credential rides on each tick request as a bearer
token, so the server itself holds no credential.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = serveAddr
	}
	if addr == "" {
		addr = ":8080"
	}

	return httpapi.NewServer(watchService).Run(addr)
}
