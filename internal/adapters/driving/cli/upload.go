package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> <remote-path>",
	Short: "Upload a local file to the drive",
	Long: `Uploads a local file to the given drive path through the chunked upload
session, replacing any existing item. Useful for seeding the inbox or
restoring the ledger by hand.`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploader == nil {
		return errors.New("uploader not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	item, err := uploader.Upload(context.Background(), args[1], data)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s (%d bytes) as %s\n", item.Name, len(data), item.ID)
	return nil
}
