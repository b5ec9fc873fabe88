// Package platform is a client for the subset of the deployment
// platform's HTTP API that a deployment needs: ephemeral upload
// sources, builds and their log streams, config vars, buildpacks and
// platform-wide status.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

const acceptHeader = "application/vnd.heroku+json; version=3"

// Client is an authenticated platform API client.
type Client struct {
	apiURL    *url.URL
	statusURL *url.URL
	http      *http.Client
}

// NewClient creates a platform client for apiURL and statusURL,
// authenticated with the supplied token
func NewClient(apiURL, statusURL, token string) (client *Client, err error) {
	api, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("cannot parse API URL: %v", err)
	}
	status, err := url.Parse(statusURL)
	if err != nil {
		return nil, fmt.Errorf("cannot parse status URL: %v", err)
	}

	tokenService := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tokenClient := oauth2.NewClient(context.Background(), tokenService)

	return &Client{
		apiURL:    api,
		statusURL: status,
		http:      tokenClient,
	}, nil
}

// Error is a non-success platform API response. The original response
// body is kept so remote failures can be diagnosed from the error.
type Error struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("platform: request failed with status %d: %s", e.StatusCode, e.Body)
}

// do performs an API request and decodes the response into result.
// Any non-2xx response is returned as an *Error.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	u := *c.apiURL
	u.Path = path

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return fmt.Errorf("cannot create request: %v", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		var errResp struct {
			ID      string `json:"id"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("cannot decode response: %v", err)
		}
	}
	return nil
}
