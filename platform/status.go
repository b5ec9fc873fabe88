package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusGreen is the only subsystem status considered healthy.
const StatusGreen = "green"

// SystemStatus is the color-coded health of one platform subsystem.
type SystemStatus struct {
	System string `json:"system"`
	Status string `json:"status"`
}

type currentStatus struct {
	Status []SystemStatus `json:"status"`
}

// Status fetches platform-wide subsystem health from the status API.
// The status host is public and unauthenticated, so the API token is
// not sent with this request.
func (c *Client) Status(ctx context.Context) (systems []SystemStatus, err error) {
	u := *c.statusURL
	u.Path = u.Path + "/current-status"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create status request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform status request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read status response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var current currentStatus
	if err = json.Unmarshal(body, &current); err != nil {
		return nil, fmt.Errorf("cannot decode status response: %v", err)
	}
	return current.Status, nil
}
