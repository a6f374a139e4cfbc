// ABOUTME: Google Drive file retrieval for drive-file materials
// ABOUTME: Fetches file metadata and media content with a size ceiling
package classroom

import (
	"context"
	"fmt"
	"io"

	"github.com/harperreed/classwatch/models"
)

// maxFileSize is the largest drive file fetched for re-upload. Anything
// bigger is skipped; the [title](url) field in the notification still links
// to it.
const maxFileSize = 8_000_000

// GetFile downloads a drive file by id. Returns (nil, nil) when the reported
// size exceeds the ceiling.
func (c *Client) GetFile(ctx context.Context, fileID string) (*models.DriveFile, error) {
	meta, err := c.drive.Files.Get(fileID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file metadata for %s: %w", fileID, err)
	}

	if meta.FileSize > maxFileSize {
		return nil, nil
	}

	resp, err := c.drive.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content for %s: %w", fileID, err)
	}

	return &models.DriveFile{Title: meta.Title, Data: data}, nil
}
