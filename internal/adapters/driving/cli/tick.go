package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tickJSON bool

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one pass over the inbox",
	Long: `Runs a single bounded pass: lists the inbox, takes up to the configured
batch size of PDFs, relocates each to the processed folder, extracts and
records its metadata, and prints the per-item report.

Per-item failures never abort the batch; the command fails only when the
inbox listing itself fails.`,
	RunE: runTick,
}

func init() {
	tickCmd.Flags().BoolVar(&tickJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(tickCmd)
}

func runTick(cmd *cobra.Command, _ []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	report, err := watchService.Tick(context.Background())
	if err != nil {
		return fmt.Errorf("tick failed: %w", err)
	}

	if tickJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Tick %s: %d found, %d processed, %d succeeded\n",
		report.TickID, report.Found, report.Processed, report.Success)
	for _, res := range report.Results {
		if res.OK {
			cmd.Printf("  ok    %s (%s)\n", res.File, res.Title)
		} else {
			cmd.Printf("  fail  %s [%s]\n", res.File, res.Err)
		}
	}
	return nil
}
