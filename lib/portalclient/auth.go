// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package portalclient

import (
	"context"
	"fmt"

	"github.com/streamline-portal/portal/lib/schema"
)

// Login exchanges credentials for an access token via POST /auth/login.
// It does not store the token anywhere — that is the session store's
// job.
func (client *Client) Login(ctx context.Context, username, password string) (*schema.TokenGrant, error) {
	request := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var grant schema.TokenGrant
	if err := client.call(ctx, "POST", "/auth/login", request, &grant); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if grant.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access_token in response")
	}
	return &grant, nil
}

// Account returns the identity bound to the current bearer token via
// GET /account/me.
func (client *Client) Account(ctx context.Context) (*schema.Account, error) {
	var account schema.Account
	if err := client.call(ctx, "GET", "/account/me", nil, &account); err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	return &account, nil
}
