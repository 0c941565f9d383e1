package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
)

// defaultPageSize is the pageSize used for files.list requests when the
// caller does not specify one. 100 is the Drive API default; 1000 the max.
const defaultPageSize = 100

// listFields limits files.list responses to the metadata the utility needs.
const listFields = "nextPageToken,files(id,name,mimeType,size)"

// ListOptions configures a folder listing.
type ListOptions struct {
	// PageSize is the per-request page size (1–1000). 0 means the default.
	PageSize int

	// MaxResults caps the total number of files returned across pages.
	// 0 means unlimited.
	MaxResults int

	// Exclude drops files with these exact names from the result.
	Exclude []string
}

// ListFolder returns the non-trashed files directly inside a folder,
// handling pagination automatically. Exclusion and the MaxResults cap are
// applied client-side, so a page fetch stops as soon as the cap is reached.
func (c *Client) ListFolder(ctx context.Context, folderID string, opts ListOptions) ([]File, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	c.logger.Info("listing folder",
		slog.String("folder_id", folderID),
		slog.Int("page_size", pageSize),
	)

	var files []File

	pageToken := ""
	page := 1

	for {
		pageFiles, nextToken, err := c.listPage(ctx, folderID, pageSize, pageToken, page)
		if err != nil {
			return nil, err
		}

		for _, f := range pageFiles {
			if slices.Contains(opts.Exclude, f.Name) {
				c.logger.Debug("excluding file by name",
					slog.String("file_id", f.ID),
					slog.String("name", f.Name),
				)

				continue
			}

			files = append(files, f)

			if opts.MaxResults > 0 && len(files) >= opts.MaxResults {
				c.logger.Info("listing capped",
					slog.String("folder_id", folderID),
					slog.Int("max_results", opts.MaxResults),
				)

				return files, nil
			}
		}

		if nextToken == "" {
			break
		}

		pageToken = nextToken
		page++
	}

	c.logger.Info("listed folder complete",
		slog.String("folder_id", folderID),
		slog.Int("total_files", len(files)),
	)

	return files, nil
}

// listPage fetches a single page of a folder listing and returns the files
// and the next page token (empty if no more pages).
func (c *Client) listPage(ctx context.Context, folderID string, pageSize int, pageToken string, page int) ([]File, string, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("'%s' in parents and trashed = false", folderID))
	q.Set("fields", listFields)
	q.Set("pageSize", strconv.Itoa(pageSize))

	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}

	resp, err := c.Do(ctx, http.MethodGet, "/files?"+q.Encode())
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var flr fileListResponse
	if err := json.NewDecoder(resp.Body).Decode(&flr); err != nil {
		return nil, "", fmt.Errorf("drive: decoding file list response: %w", err)
	}

	files := make([]File, 0, len(flr.Files))
	for i := range flr.Files {
		files = append(files, flr.Files[i].toFile(c.logger))
	}

	c.logger.Debug("fetched listing page",
		slog.Int("page", page),
		slog.Int("count", len(files)),
	)

	return files, flr.NextPageToken, nil
}

// GetFile retrieves a single file's metadata by ID.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	c.logger.Info("getting file metadata",
		slog.String("file_id", fileID),
	)

	q := url.Values{}
	q.Set("fields", "id,name,mimeType,size")

	resp, err := c.Do(ctx, http.MethodGet, "/files/"+url.PathEscape(fileID)+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var fr fileResource
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, fmt.Errorf("drive: decoding file response: %w", err)
	}

	f := fr.toFile(c.logger)

	return &f, nil
}
