package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jko/gdrive-go/internal/fetch"
	"github.com/jko/gdrive-go/internal/savefile"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <folder-id>",
		Short: "Download the files in a Drive folder",
		Long: `Download every file directly inside a Drive folder.

Existing destination files are handled per --duplicate: "skip" leaves them
alone, "overwrite" replaces them, "rename" writes to name_1.ext, name_2.ext
and so on. Google Workspace documents are exported using the MIME mapping
from the config file; override per-type with --export-mime.`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}

	cmd.Flags().StringP("out", "o", ".", "destination directory")
	cmd.Flags().Int("max", 0, "maximum number of files to download (0 = all)")
	cmd.Flags().StringArray("exclude", nil, "file name to exclude (repeatable)")
	cmd.Flags().String("duplicate", "", "duplicate handling: skip, overwrite, or rename")
	cmd.Flags().Bool("create-dirs", false, "create the destination directory if missing")
	cmd.Flags().StringToString("export-mime", nil, "Workspace MIME to export MIME override (repeatable)")
	cmd.Flags().Bool("stdout", false, "write file contents to stdout instead of saving")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	client, logger, err := driveClient(cmd.Context())
	if err != nil {
		return err
	}

	dupFlag, _ := cmd.Flags().GetString("duplicate")
	if dupFlag == "" {
		dupFlag = loadedCfg.Download.DuplicateStrategy
	}

	strategy, err := savefile.ParseStrategy(dupFlag)
	if err != nil {
		return err
	}

	destDir, _ := cmd.Flags().GetString("out")
	maxFiles, _ := cmd.Flags().GetInt("max")
	exclude, _ := cmd.Flags().GetStringArray("exclude")
	createDirs, _ := cmd.Flags().GetBool("create-dirs")
	mimeOverrides, _ := cmd.Flags().GetStringToString("export-mime")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	exportMIME := make(map[string]string, len(loadedCfg.Export.MIMEMap)+len(mimeOverrides))
	for from, to := range loadedCfg.Export.MIMEMap {
		exportMIME[from] = to
	}

	for from, to := range mimeOverrides {
		exportMIME[from] = to
	}

	opts := fetch.Options{
		DestDir:           destDir,
		MaxFiles:          maxFiles,
		Exclude:           exclude,
		ExportMIME:        exportMIME,
		DefaultExportMIME: loadedCfg.Export.DefaultMIME,
		Strategy:          strategy,
		CreateDirs:        createDirs || loadedCfg.Download.CreateDirs,
		ReturnData:        toStdout,
		PageSize:          loadedCfg.Download.PageSize,
		Logger:            logger,
	}

	if toStdout {
		opts.DestDir = ""
	}

	items, err := fetch.Download(cmd.Context(), client, args[0], opts)
	if err != nil {
		return err
	}

	if toStdout {
		for _, item := range items {
			if _, err := os.Stdout.Write(item.Data()); err != nil {
				return err
			}
		}

		return nil
	}

	statusf(flagQuiet, "%s\n", successColor.Sprintf("Downloaded folder %s to %s", args[0], destDir))

	return nil
}
