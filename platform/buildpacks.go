package platform

import (
	"context"
	"fmt"
	"net/http"
)

type buildpackUpdate struct {
	Buildpack string `json:"buildpack"`
}

type buildpackInstallationRequest struct {
	Updates []buildpackUpdate `json:"updates"`
}

// UpdateBuildpacks replaces the app's buildpack list with urls, in order.
func (c *Client) UpdateBuildpacks(ctx context.Context, app string, urls []string) error {
	req := buildpackInstallationRequest{}
	for _, u := range urls {
		req.Updates = append(req.Updates, buildpackUpdate{Buildpack: u})
	}
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/apps/%s/buildpack-installations", app), &req, nil)
	if err != nil {
		return fmt.Errorf("cannot update buildpacks: %v", err)
	}
	return nil
}
