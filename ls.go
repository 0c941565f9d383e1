package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jko/gdrive-go/internal/drive"
)

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <folder-id>",
		Short: "List the files in a Drive folder",
		Args:  cobra.ExactArgs(1),
		RunE:  runLs,
	}

	cmd.Flags().Int("max", 0, "maximum number of files to list (0 = all)")

	return cmd
}

// fileJSON is the JSON-serializable representation of a listed file.
type fileJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     *int64 `json:"size,omitempty"`
}

func runLs(cmd *cobra.Command, args []string) error {
	client, _, err := driveClient(cmd.Context())
	if err != nil {
		return err
	}

	maxFiles, _ := cmd.Flags().GetInt("max")

	files, err := client.ListFolder(cmd.Context(), args[0], drive.ListOptions{
		PageSize:   loadedCfg.Download.PageSize,
		MaxResults: maxFiles,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printFilesJSON(files)
	}

	printFilesTable(files)

	return nil
}

func printFilesJSON(files []drive.File) error {
	items := make([]fileJSON, len(files))
	for i, f := range files {
		items[i] = fileJSON{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
		}

		if f.Size != drive.SizeUnknown {
			size := f.Size
			items[i].Size = &size
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func printFilesTable(files []drive.File) {
	headers := []string{"NAME", "SIZE", "TYPE", "ID"}
	rows := make([][]string, len(files))

	for i, f := range files {
		rows[i] = []string{f.Name, formatSize(f.Size), f.MimeType, f.ID}
	}

	printTable(os.Stdout, headers, rows)
}
