package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fundesk/internal/i18n"
	"fundesk/internal/logging"
	"fundesk/internal/upload"
)

var uploadFileType string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]...",
	Short: "Upload files to the platform",
	Long: `Uploads one or more files through the platform file endpoint.

Files with an unaccepted extension are rejected locally and never leave
the machine; the rest upload sequentially with per-file progress. A file
that fails does not stop the ones after it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := requireOrg(); err != nil {
			return err
		}
		logger := logging.For(logging.CategoryUpload)

		queue := upload.NewQueue(client.Files(), uploadFileType,
			upload.WithOnChange(func(item upload.Item) {
				if item.State == upload.StateUploading {
					fmt.Fprintf(stdout, "\r%s: %d%%", item.Name, item.Progress)
				}
			}))

		for _, name := range args {
			queue.Add(name)
		}

		ctx, cancel := cmdContext()
		defer cancel()
		if err := queue.Process(ctx, func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		}); err != nil {
			return err
		}

		failed := 0
		for _, item := range queue.Items() {
			fmt.Fprint(stdout, "\r")
			switch item.State {
			case upload.StateUploaded:
				fmt.Fprintln(stdout, i18n.TData("upload_done", map[string]any{"Name": item.Name}))
			case upload.StateError:
				failed++
				fmt.Fprintln(stdout, i18n.TData("upload_error", map[string]any{
					"Name":   item.Name,
					"Errors": strings.Join(item.Errors, "; "),
				}))
				logger.Warn("upload failed",
					zap.String("name", item.Name), zap.Strings("errors", item.Errors))
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadFileType, "type", "reimbursement_proof", "Server-side file type")
	rootCmd.AddCommand(uploadCmd)
}
