// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package portalui is the interactive terminal client for the
// Streamline Portal. It is a single bubbletea program organized around
// a fragment router: every view is addressed by a URL-style fragment
// ("#/plugins", "#/plugins/scene-switcher", "#/admin/users") and the
// router selects the first matching entry of an ordered route table,
// exactly like the fragment navigation of a single-page browser app.
//
// Views load their data through asynchronous commands. Each navigation
// increments a generation counter and every data message carries the
// generation it was issued under; the update loop drops messages from
// superseded navigations, so a slow fetch for a view the user has left
// can never overwrite the current view.
package portalui
