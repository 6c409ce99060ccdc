// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/streamline-portal/portal/lib/schema"
)

// Plugins returns the public listing of published plugins, optionally
// filtered by a search query matched against plugin names and IDs.
func (client *Client) Plugins(ctx context.Context, query string) ([]schema.PluginMetadata, error) {
	path := "/plugins"
	if query != "" {
		path += "?query=" + url.QueryEscape(query)
	}
	var plugins []schema.PluginMetadata
	if err := client.call(ctx, "GET", path, nil, &plugins); err != nil {
		return nil, fmt.Errorf("plugins: %w", err)
	}
	return plugins, nil
}

// Plugin returns the public detail of a published plugin.
func (client *Client) Plugin(ctx context.Context, pluginID string) (*schema.PluginMetadata, error) {
	var plugin schema.PluginMetadata
	if err := client.call(ctx, "GET", "/plugins/"+url.PathEscape(pluginID), nil, &plugin); err != nil {
		return nil, fmt.Errorf("plugin %s: %w", pluginID, err)
	}
	return &plugin, nil
}

// PluginVersions returns the append-only release history of a
// published plugin, one metadata entry per release.
func (client *Client) PluginVersions(ctx context.Context, pluginID string) ([]schema.PluginMetadata, error) {
	var versions []schema.PluginMetadata
	if err := client.call(ctx, "GET", "/plugins/"+url.PathEscape(pluginID)+"/versions", nil, &versions); err != nil {
		return nil, fmt.Errorf("plugin %s versions: %w", pluginID, err)
	}
	return versions, nil
}

// Manage returns the owner/admin manage view of a plugin, including
// status and owner. The server rejects callers that are neither the
// owner nor an admin.
func (client *Client) Manage(ctx context.Context, pluginID string) (*schema.PluginRecord, error) {
	var record schema.PluginRecord
	if err := client.call(ctx, "GET", "/plugins/"+url.PathEscape(pluginID)+"/manage", nil, &record); err != nil {
		return nil, fmt.Errorf("plugin %s manage: %w", pluginID, err)
	}
	return &record, nil
}

// MyPlugins returns the caller's own plugins. For admins the server
// returns every plugin, which is how the approval queue is derived.
func (client *Client) MyPlugins(ctx context.Context) ([]schema.PluginRecord, error) {
	var records []schema.PluginRecord
	if err := client.call(ctx, "GET", "/plugins/mine", nil, &records); err != nil {
		return nil, fmt.Errorf("my plugins: %w", err)
	}
	return records, nil
}

// CreatePluginRequest is the body for POST /plugins.
type CreatePluginRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Compatibility string `json:"compatibility"`
}

// CreatePlugin registers a new plugin owned by the caller. The server
// creates it in draft status with an initial version.
func (client *Client) CreatePlugin(ctx context.Context, request CreatePluginRequest) (*schema.PluginRecord, error) {
	var record schema.PluginRecord
	if err := client.call(ctx, "POST", "/plugins", request, &record); err != nil {
		return nil, fmt.Errorf("create plugin %s: %w", request.ID, err)
	}
	return &record, nil
}

// UpdatePluginRequest is the body for PUT /plugins/{id}. The plugin ID
// is immutable and travels in the path.
type UpdatePluginRequest struct {
	Name          string `json:"name"`
	Compatibility string `json:"compatibility"`
}

// UpdatePlugin edits a plugin's mutable metadata.
func (client *Client) UpdatePlugin(ctx context.Context, pluginID string, request UpdatePluginRequest) (*schema.PluginRecord, error) {
	var record schema.PluginRecord
	if err := client.call(ctx, "PUT", "/plugins/"+url.PathEscape(pluginID), request, &record); err != nil {
		return nil, fmt.Errorf("update plugin %s: %w", pluginID, err)
	}
	return &record, nil
}

// DeletePlugin removes a plugin. The optional reason is recorded in
// the server's audit log.
func (client *Client) DeletePlugin(ctx context.Context, pluginID, reason string) error {
	path := "/plugins/" + url.PathEscape(pluginID)
	if reason != "" {
		path += "?reason=" + url.QueryEscape(reason)
	}
	if err := client.call(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete plugin %s: %w", pluginID, err)
	}
	return nil
}

// Transition requests a lifecycle transition (submit, approve, reject,
// publish, unpublish) via the status-transition endpoint named after
// the action. The optional reason is only meaningful for reject. The
// server validates the transition and returns the updated manage view.
func (client *Client) Transition(ctx context.Context, pluginID, action, reason string) (*schema.PluginRecord, error) {
	path := "/plugins/" + url.PathEscape(pluginID) + "/" + url.PathEscape(action)
	if reason != "" {
		path += "?reason=" + url.QueryEscape(reason)
	}
	var record schema.PluginRecord
	if err := client.call(ctx, "POST", path, nil, &record); err != nil {
		return nil, fmt.Errorf("%s plugin %s: %w", action, pluginID, err)
	}
	return &record, nil
}

// DownloadPackage streams a release package to destination. Unlike the
// JSON endpoints this read is unbounded: packages can legitimately be
// large, so the body is copied incrementally.
func (client *Client) DownloadPackage(ctx context.Context, pluginID, version string, destination io.Writer) error {
	requestURL := client.baseURL + "/plugins/" + url.PathEscape(pluginID) + "/package?version=" + url.QueryEscape(version)
	request, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return err
	}
	if client.tokens != nil {
		if token := client.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("download %s@%s: %w", pluginID, version, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return statusError(response, body)
	}
	if _, err := io.Copy(destination, response.Body); err != nil {
		return fmt.Errorf("download %s@%s: %w", pluginID, version, err)
	}
	return nil
}
