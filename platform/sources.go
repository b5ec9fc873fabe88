package platform

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
)

// Source is a platform-issued one-time upload/fetch URL pair for
// submitting build input. It is used for a single deployment attempt
// and never reused.
type Source struct {
	SourceBlob SourceBlob `json:"source_blob"`
}

// SourceBlob holds the pre-signed URLs of an ephemeral source.
type SourceBlob struct {
	GetURL string `json:"get_url"`
	PutURL string `json:"put_url"`
}

// CreateSource requests a new ephemeral upload target for the app.
func (c *Client) CreateSource(ctx context.Context, app string) (src *Source, err error) {
	src = &Source{}
	err = c.do(ctx, http.MethodPost, fmt.Sprintf("/apps/%s/sources", app), nil, src)
	if err != nil {
		return nil, fmt.Errorf("cannot create source: %v", err)
	}
	return src, nil
}

// UploadSource PUTs the archive at archivePath to the source's upload
// URL. The archive is read fully into memory and sent with an explicit
// Content-Length and an empty Content-Type; the storage backend signs
// the URL for exactly those headers. Only HTTP 200 is a success.
func (c *Client) UploadSource(ctx context.Context, archivePath string, src *Source) error {
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return fmt.Errorf("cannot read archive %s: %v", archivePath, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, src.SourceBlob.PutURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("cannot create upload request: %v", err)
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", "")

	// The upload URL is pre-signed, so this goes out without the API
	// client's bearer token.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("source upload failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("source upload failed with status %d", resp.StatusCode)
	}
	return nil
}
