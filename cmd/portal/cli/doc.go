// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-tree framework for the portal CLI:
// command dispatch with typo suggestions, structured help output,
// categorized errors, JSON output helpers, and the shared connection
// bootstrap that loads config and restores the saved session.
package cli
