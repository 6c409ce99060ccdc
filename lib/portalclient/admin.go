// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/streamline-portal/portal/lib/schema"
)

// Users lists every account. Admin only.
func (client *Client) Users(ctx context.Context) ([]schema.User, error) {
	var users []schema.User
	if err := client.call(ctx, "GET", "/admin/users", nil, &users); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return users, nil
}

// CreateUserRequest is the body for POST /admin/users.
type CreateUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     schema.Role `json:"role"`
	Active   bool        `json:"active"`
}

// CreateUser provisions a new account. Admin only.
func (client *Client) CreateUser(ctx context.Context, request CreateUserRequest) (*schema.User, error) {
	var user schema.User
	if err := client.call(ctx, "POST", "/admin/users", request, &user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", request.Username, err)
	}
	return &user, nil
}

// UpdateUserRequest is the body for PATCH /admin/users/{username}.
// Zero-valued fields are omitted, so a PATCH only touches what the
// caller set. Active is a pointer because false is a meaningful value.
type UpdateUserRequest struct {
	Role     schema.Role `json:"role,omitempty"`
	Password string      `json:"password,omitempty"`
	Active   *bool       `json:"active,omitempty"`
}

// UpdateUser mutates an account. The optional reason is recorded in
// the audit log when the update changes the account's role. Admin
// only. There is no self-modification guard: an admin demoting or
// deactivating their own account is accepted as-is.
func (client *Client) UpdateUser(ctx context.Context, username string, request UpdateUserRequest, reason string) (*schema.User, error) {
	path := "/admin/users/" + url.PathEscape(username)
	if reason != "" {
		path += "?reason=" + url.QueryEscape(reason)
	}
	var user schema.User
	if err := client.call(ctx, "PATCH", path, request, &user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", username, err)
	}
	return &user, nil
}

// DeleteUser removes an account. Admin only.
func (client *Client) DeleteUser(ctx context.Context, username, reason string) error {
	path := "/admin/users/" + url.PathEscape(username)
	if reason != "" {
		path += "?reason=" + url.QueryEscape(reason)
	}
	if err := client.call(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete user %s: %w", username, err)
	}
	return nil
}

// AuditLogs returns the server's audit trail in append order. Admin
// only. Views that want newest-first reverse it themselves.
func (client *Client) AuditLogs(ctx context.Context) ([]schema.AuditEntry, error) {
	var entries []schema.AuditEntry
	if err := client.call(ctx, "GET", "/admin/audit-logs", nil, &entries); err != nil {
		return nil, fmt.Errorf("audit logs: %w", err)
	}
	return entries, nil
}
