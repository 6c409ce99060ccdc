// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package lifecycle computes and executes plugin status transitions.
//
// The state machine over a plugin's status is:
//
//	draft|rejected|unpublished → submitted            (submit)
//	submitted                  → approved|rejected    (approve/reject, admin)
//	approved                   → published            (publish, admin)
//	published                  → unpublished          (unpublish, admin)
//
// ActionsFor is the single source of truth for which actions a given
// (status, role) pair may be offered; nothing outside its table is
// ever shown. Apply executes one transition through the API and then
// re-fetches the manage view, because the backend is authoritative
// and may reject a transition that raced with another admin.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/streamline-portal/portal/lib/portalclient"
	"github.com/streamline-portal/portal/lib/schema"
)

// Action is a lifecycle transition. Its string value is the name of
// the transition endpoint.
type Action string

const (
	ActionSubmit    Action = "submit"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
)

// Label returns the button text for the action.
func (action Action) Label() string {
	switch action {
	case ActionSubmit:
		return "Submit for review"
	case ActionApprove:
		return "Approve"
	case ActionReject:
		return "Reject"
	case ActionPublish:
		return "Publish"
	case ActionUnpublish:
		return "Unpublish"
	default:
		return string(action)
	}
}

// Tone classifies the action for styling.
type Tone int

const (
	// ToneSuccess is a forward transition (submit, approve, publish).
	ToneSuccess Tone = iota
	// ToneDanger is a destructive decision (reject).
	ToneDanger
	// ToneWarning is a reversible withdrawal (unpublish).
	ToneWarning
)

// Tone returns the styling tone for the action.
func (action Action) Tone() Tone {
	switch action {
	case ActionReject:
		return ToneDanger
	case ActionUnpublish:
		return ToneWarning
	default:
		return ToneSuccess
	}
}

// TakesReason reports whether the action carries an optional free-text
// reason. Only reject does; the reason lands in the audit log.
func (action Action) TakesReason() bool {
	return action == ActionReject
}

// ActionsFor returns the ordered set of legal actions for a plugin in
// the given status as seen by the given role. The caller is assumed to
// hold the manage view of the plugin (owner or admin); ownership
// itself is enforced server-side.
func ActionsFor(status schema.Status, role schema.Role) []Action {
	var actions []Action
	switch status {
	case schema.StatusDraft, schema.StatusRejected, schema.StatusUnpublished:
		if role == schema.RoleDeveloper || role == schema.RoleAdmin {
			actions = append(actions, ActionSubmit)
		}
	case schema.StatusSubmitted:
		if role == schema.RoleAdmin {
			actions = append(actions, ActionApprove, ActionReject)
		}
	case schema.StatusApproved:
		if role == schema.RoleAdmin {
			actions = append(actions, ActionPublish)
		}
	case schema.StatusPublished:
		if role == schema.RoleAdmin {
			actions = append(actions, ActionUnpublish)
		}
	}
	return actions
}

// Controller executes lifecycle transitions through the portal API.
type Controller struct {
	client *portalclient.Client
}

// NewController creates a Controller backed by the given client.
func NewController(client *portalclient.Client) *Controller {
	return &Controller{client: client}
}

// Apply requests one transition and, on success, re-fetches the
// plugin's manage view so the caller sees the server's view of the new
// status rather than a local guess. On failure nothing is fetched: the
// caller keeps displaying the prior state and surfaces the error.
func (controller *Controller) Apply(ctx context.Context, pluginID string, action Action, reason string) (*schema.PluginRecord, error) {
	if reason != "" && !action.TakesReason() {
		return nil, fmt.Errorf("%s does not take a reason", action)
	}
	if _, err := controller.client.Transition(ctx, pluginID, string(action), reason); err != nil {
		return nil, err
	}
	record, err := controller.client.Manage(ctx, pluginID)
	if err != nil {
		return nil, fmt.Errorf("transition applied but refresh failed: %w", err)
	}
	return record, nil
}
