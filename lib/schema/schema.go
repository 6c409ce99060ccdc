// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Role is an account role. Roles gate both navigation and the plugin
// lifecycle actions offered in the UI; the server re-checks every
// operation, so the client-side role is a rendering hint, not a
// security boundary.
type Role string

const (
	// RoleUser can browse and download published plugins.
	RoleUser Role = "user"
	// RoleDeveloper can additionally create plugins and submit them
	// for review.
	RoleDeveloper Role = "developer"
	// RoleAdmin can review submissions, publish, manage users, and
	// read audit logs.
	RoleAdmin Role = "admin"
)

// Roles lists every valid role, in privilege order.
var Roles = []Role{RoleUser, RoleDeveloper, RoleAdmin}

// Valid reports whether the role is one of the three known roles.
func (role Role) Valid() bool {
	switch role {
	case RoleUser, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

// Status is a plugin's position in the review lifecycle. Transitions
// are performed exclusively by the server; the client reads the status
// and requests transitions through the lifecycle endpoints.
type Status string

const (
	// StatusDraft is a freshly created plugin, visible only to its
	// owner and admins.
	StatusDraft Status = "draft"
	// StatusSubmitted is awaiting admin review.
	StatusSubmitted Status = "submitted"
	// StatusApproved passed review but is not yet published.
	StatusApproved Status = "approved"
	// StatusRejected failed review. The owner may revise and resubmit.
	StatusRejected Status = "rejected"
	// StatusPublished is live in the public listing.
	StatusPublished Status = "published"
	// StatusUnpublished was withdrawn from the public listing.
	StatusUnpublished Status = "unpublished"
)

// Statuses lists every lifecycle status.
var Statuses = []Status{
	StatusDraft, StatusSubmitted, StatusApproved,
	StatusRejected, StatusPublished, StatusUnpublished,
}

// Valid reports whether the status is a known lifecycle status.
func (status Status) Valid() bool {
	switch status {
	case StatusDraft, StatusSubmitted, StatusApproved,
		StatusRejected, StatusPublished, StatusUnpublished:
		return true
	}
	return false
}

// PluginMetadata is the public listing representation of a plugin:
// what GET /plugins, GET /plugins/{id}, and GET /plugins/{id}/versions
// return. Version-specific fields describe one release; the versions
// endpoint returns one entry per release.
type PluginMetadata struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	Compatibility string `json:"compatibility"`
	PackageURL    string `json:"package_url,omitempty"`
	SHA256        string `json:"sha256,omitempty"`
	Signature     string `json:"signature,omitempty"`
}

// PluginRecord is the manage view of a plugin: the owner/admin-only
// representation that includes status and owner. Returned by
// GET /plugins/{id}/manage, GET /plugins/mine, and every lifecycle
// transition endpoint.
type PluginRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Compatibility string `json:"compatibility"`
	Owner         string `json:"owner"`
	Status        Status `json:"status"`
	Version       string `json:"version,omitempty"`
	PackageURL    string `json:"package_url,omitempty"`
	SHA256        string `json:"sha256,omitempty"`
	Signature     string `json:"signature,omitempty"`
}

// User is an admin-managed account as returned by the /admin/users
// endpoints.
type User struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Active   bool   `json:"active"`
}

// AuditEntry is a server-generated audit log record. Append-only and
// read-only from the client.
type AuditEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Target    string `json:"target"`
	Reason    string `json:"reason,omitempty"`
}

// Account is the identity returned by GET /account/me.
type Account struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// TokenGrant is the response from POST /auth/login. The refresh token
// is stored alongside the access token but the client does not yet
// use it.
type TokenGrant struct {
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
