package drive

import (
	"log/slog"
	"strconv"
	"strings"
)

// WorkspaceMIMEPrefix marks Google Workspace document types (Docs, Sheets,
// Slides, …). These have no native byte representation and must be exported
// to a concrete MIME type before download.
const WorkspaceMIMEPrefix = "application/vnd.google-apps"

// FolderMIME is the MIME type Drive assigns to folders.
const FolderMIME = "application/vnd.google-apps.folder"

// SizeUnknown indicates the size was not present in the API response.
// Workspace documents and folders have no size.
const SizeUnknown = -1

// File represents a Drive file's metadata. Fields are normalized from the
// API response; callers never see raw wire data.
type File struct {
	ID       string
	Name     string
	MimeType string
	Size     int64 // SizeUnknown when the API omits it
}

// IsFolder reports whether the file is a Drive folder.
func (f File) IsFolder() bool {
	return f.MimeType == FolderMIME
}

// IsWorkspaceDoc reports whether the file is a Google Workspace document
// that requires export before download.
func (f File) IsWorkspaceDoc() bool {
	return strings.HasPrefix(f.MimeType, WorkspaceMIMEPrefix)
}

// fileResource mirrors the Drive v3 file JSON exactly. Unexported; callers
// use File via toFile() normalization. Size arrives as a decimal string
// (int64 fields are strings throughout the Drive API).
type fileResource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     string `json:"size"`
}

type fileListResponse struct {
	NextPageToken string         `json:"nextPageToken"`
	Files         []fileResource `json:"files"`
}

// toFile normalizes a Drive v3 file resource into our File type.
func (r *fileResource) toFile(logger *slog.Logger) File {
	f := File{
		ID:       r.ID,
		Name:     r.Name,
		MimeType: r.MimeType,
		Size:     SizeUnknown,
	}

	if r.Size != "" {
		size, err := strconv.ParseInt(r.Size, 10, 64)
		if err != nil {
			logger.Warn("unparseable file size, treating as unknown",
				slog.String("file_id", r.ID),
				slog.String("raw", r.Size),
			)
		} else {
			f.Size = size
		}
	}

	return f
}
