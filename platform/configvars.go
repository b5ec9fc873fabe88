package platform

import (
	"context"
	"fmt"
	"net/http"
)

// ConfigVars retrieves the app's current config var set.
func (c *Client) ConfigVars(ctx context.Context, app string) (vars map[string]string, err error) {
	vars = map[string]string{}
	err = c.do(ctx, http.MethodGet, fmt.Sprintf("/apps/%s/config-vars", app), nil, &vars)
	if err != nil {
		return nil, fmt.Errorf("cannot get config vars: %v", err)
	}
	return vars, nil
}

// UpdateConfigVars patches the app's config vars with delta. The
// platform treats an omitted key as unchanged and an explicit null as
// a delete, so delta must contain exactly the keys to change: new
// values to add or modify, nil to remove.
func (c *Client) UpdateConfigVars(ctx context.Context, app string, delta map[string]*string) error {
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/apps/%s/config-vars", app), delta, nil)
	if err != nil {
		return fmt.Errorf("cannot update config vars: %v", err)
	}
	return nil
}
