package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Build statuses as reported by the platform. A build is terminal when
// it is succeeded or failed; an unfetchable or unrecognized record is
// unknown and treated like failed.
const (
	BuildStatusPending   = "pending"
	BuildStatusBuilding  = "building"
	BuildStatusSucceeded = "succeeded"
	BuildStatusFailed    = "failed"
	BuildStatusUnknown   = "unknown"
)

// Build is a remote build job. It is never mutated locally; a fresh
// record is fetched with GetBuild when the current status is needed.
type Build struct {
	ID              string           `json:"id"`
	Status          string           `json:"status"`
	OutputStreamURL string           `json:"output_stream_url"`
	SourceBlob      *BuildSourceBlob `json:"source_blob,omitempty"`
}

// BuildSourceBlob references the uploaded source a build compiles.
type BuildSourceBlob struct {
	URL     string `json:"url"`
	Version string `json:"version,omitempty"`
}

type buildRequest struct {
	SourceBlob BuildSourceBlob `json:"source_blob"`
}

// CreateBuild posts a build request for the uploaded source, with an
// optional version label. The returned record carries the endpoint the
// build output can be streamed from.
func (c *Client) CreateBuild(ctx context.Context, app string, src *Source, version string) (build *Build, err error) {
	req := buildRequest{
		SourceBlob: BuildSourceBlob{
			URL:     src.SourceBlob.GetURL,
			Version: version,
		},
	}
	build = &Build{}
	err = c.do(ctx, http.MethodPost, fmt.Sprintf("/apps/%s/builds", app), &req, build)
	if err != nil {
		return nil, fmt.Errorf("cannot create build: %v", err)
	}
	return build, nil
}

// GetBuild re-fetches a build record by identifier.
func (c *Client) GetBuild(ctx context.Context, app, id string) (build *Build, err error) {
	build = &Build{}
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/apps/%s/builds/%s", app, id), nil, build)
	if err != nil {
		return nil, fmt.Errorf("cannot get build %s: %v", id, err)
	}
	return build, nil
}

// StreamBuildLog opens a long-lived connection to the build's output
// stream and copies it verbatim to w until the remote side closes the
// connection. The stream ending says nothing about the build's status;
// callers verify that separately with GetBuild.
func (c *Client) StreamBuildLog(ctx context.Context, build *Build, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, build.OutputStreamURL, nil)
	if err != nil {
		return fmt.Errorf("cannot create log stream request: %v", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot open build log stream: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("build log stream failed with status %d", resp.StatusCode)
	}
	_, err = io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("error reading build log stream: %v", err)
	}
	return nil
}
