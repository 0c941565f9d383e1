// Package fetch orchestrates folder downloads: it lists a remote Drive
// folder, resolves local destination paths through the savefile planner, and
// streams each file's content to disk or back to the caller. Remote access
// goes through narrow interfaces so tests can substitute fakes.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jko/gdrive-go/internal/drive"
	"github.com/jko/gdrive-go/internal/savefile"
)

// Lister lists the files in a remote folder.
type Lister interface {
	ListFolder(ctx context.Context, folderID string, opts drive.ListOptions) ([]drive.File, error)
}

// ContentFetcher streams a remote file's content, exporting Workspace
// documents to the given MIME type.
type ContentFetcher interface {
	Fetch(ctx context.Context, file drive.File, exportMIME string, w io.Writer) (int64, error)
}

// Service is the remote collaborator surface Download needs.
// *drive.Client satisfies it.
type Service interface {
	Lister
	ContentFetcher
}

// Options configures a folder download.
type Options struct {
	// DestDir is the local directory files are saved into. Empty means
	// nothing is written; ReturnData must then be true.
	DestDir string

	// MaxFiles caps how many files are processed. 0 means unlimited.
	MaxFiles int

	// Exclude drops remote files with these exact names.
	Exclude []string

	// ExportMIME maps Workspace MIME types to the MIME type they are
	// exported as. Unmapped Workspace types fall back to DefaultExportMIME.
	ExportMIME map[string]string

	// DefaultExportMIME is the fallback export MIME type. Empty means an
	// unmapped Workspace document is a configuration error.
	DefaultExportMIME string

	// Strategy selects duplicate handling for destinations that exist.
	Strategy savefile.Strategy

	// CreateDirs creates missing destination directories instead of failing.
	CreateDirs bool

	// ReturnData collects the downloaded payloads and returns them.
	ReturnData bool

	// PageSize is the remote listing page size. 0 means the API default.
	PageSize int

	// Logger receives progress and decisions. Defaults to slog.Default().
	Logger *slog.Logger
}

// Download lists a remote folder and materializes its files locally.
//
// Destination paths are planned before any content is fetched, so a
// misconfiguration (missing directory, unmapped Workspace type) is reported
// before expensive remote calls execute. Files whose destination is skipped
// under the Skip strategy are never fetched at all. Remote failures,
// including Workspace export failures, abort the batch and propagate.
//
// When ReturnData is true the downloaded payloads are returned in listing
// order (skipped files excluded).
func Download(ctx context.Context, svc Service, folderID string, opts Options) ([]savefile.Item, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.DestDir == "" && !opts.ReturnData {
		return nil, savefile.ErrNoDestination
	}

	files, err := svc.ListFolder(ctx, folderID, drive.ListOptions{
		PageSize:   opts.PageSize,
		MaxResults: opts.MaxFiles,
		Exclude:    opts.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch: listing folder %s: %w", folderID, err)
	}

	files = dropFolders(files, logger)

	// Resolve export MIME types for the whole batch up front. An unmapped
	// Workspace document fails the batch before anything is downloaded.
	exportMIMEs, err := resolveExportMIMEs(files, opts)
	if err != nil {
		return nil, err
	}

	if opts.DestDir == "" {
		return fetchAll(ctx, svc, files, exportMIMEs, logger)
	}

	return fetchToDir(ctx, svc, files, exportMIMEs, opts, logger)
}

// fetchToDir plans destination paths once, then downloads and writes each
// non-skipped file in lock-step with its planned entry.
func fetchToDir(
	ctx context.Context,
	fetcher ContentFetcher,
	files []drive.File,
	exportMIMEs map[string]string,
	opts Options,
	logger *slog.Logger,
) ([]savefile.Item, error) {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(opts.DestDir, localName(f))
	}

	entries, err := savefile.Plan(paths, opts.CreateDirs, opts.Strategy, logger)
	if err != nil {
		return nil, err
	}

	var out []savefile.Item

	for i, f := range files {
		entry := entries[i]
		if entry.Outcome == savefile.Skipped {
			continue
		}

		item, err := fetchOne(ctx, fetcher, f, exportMIMEs[f.ID])
		if err != nil {
			return nil, err
		}

		if err := savefile.Write(item, entry.Resolved, false); err != nil {
			return nil, err
		}

		logger.Info("saved file",
			slog.String("file_id", f.ID),
			slog.String("path", entry.Resolved),
		)

		if opts.ReturnData {
			out = append(out, item)
		}
	}

	return out, nil
}

// fetchAll downloads every file into memory and returns the payloads.
func fetchAll(
	ctx context.Context,
	fetcher ContentFetcher,
	files []drive.File,
	exportMIMEs map[string]string,
	logger *slog.Logger,
) ([]savefile.Item, error) {
	out := make([]savefile.Item, 0, len(files))

	for _, f := range files {
		item, err := fetchOne(ctx, fetcher, f, exportMIMEs[f.ID])
		if err != nil {
			return nil, err
		}

		logger.Debug("fetched file",
			slog.String("file_id", f.ID),
			slog.Int("bytes", len(item.Data())),
		)

		out = append(out, item)
	}

	return out, nil
}

// fetchOne downloads a single file's content into memory.
func fetchOne(ctx context.Context, fetcher ContentFetcher, f drive.File, exportMIME string) (savefile.Item, error) {
	var buf bytes.Buffer

	if _, err := fetcher.Fetch(ctx, f, exportMIME, &buf); err != nil {
		return savefile.Item{}, fmt.Errorf("fetch: downloading %s (%s): %w", f.Name, f.ID, err)
	}

	return savefile.Bytes(buf.Bytes()), nil
}

// resolveExportMIMEs computes the export MIME type for every Workspace
// document in the batch. Returns drive.ErrExportMIME (wrapped) when a
// Workspace type has no mapping and no default.
func resolveExportMIMEs(files []drive.File, opts Options) (map[string]string, error) {
	mimes := make(map[string]string, len(files))

	for _, f := range files {
		if !f.IsWorkspaceDoc() {
			continue
		}

		m, ok := opts.ExportMIME[f.MimeType]
		if !ok {
			m = opts.DefaultExportMIME
		}

		if m == "" {
			return nil, fmt.Errorf("%w: %s (%s)", drive.ErrExportMIME, f.Name, f.MimeType)
		}

		mimes[f.ID] = m
	}

	return mimes, nil
}

// dropFolders removes subfolders from a listing. The utility downloads the
// direct files of one folder; it does not recurse.
func dropFolders(files []drive.File, logger *slog.Logger) []drive.File {
	kept := make([]drive.File, 0, len(files))

	for _, f := range files {
		if f.IsFolder() {
			logger.Debug("skipping subfolder",
				slog.String("file_id", f.ID),
				slog.String("name", f.Name),
			)

			continue
		}

		kept = append(kept, f)
	}

	return kept
}

// localName converts a remote file name to a safe local file name.
// Names are NFC-normalized (macOS volumes hand back NFD) and path
// separators are replaced so a remote name cannot escape the destination
// directory. A file with an empty name falls back to its ID.
func localName(f drive.File) string {
	name := norm.NFC.String(f.Name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, string(filepath.Separator), "_")

	if name == "" || name == "." || name == ".." {
		return f.ID
	}

	return name
}
