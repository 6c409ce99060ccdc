// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"
	"testing"
)

func TestRootTreeIsWellFormed(t *testing.T) {
	t.Parallel()

	root := Root()
	if root.Name != "portal" {
		t.Fatalf("root name = %q", root.Name)
	}

	seen := map[string]bool{}
	for _, sub := range root.Subcommands {
		if sub.Name == "" {
			t.Error("subcommand with empty name")
		}
		if seen[sub.Name] {
			t.Errorf("duplicate subcommand %q", sub.Name)
		}
		seen[sub.Name] = true
		if sub.Summary == "" {
			t.Errorf("subcommand %q has no summary", sub.Name)
		}
		if sub.Run == nil && len(sub.Subcommands) == 0 {
			t.Errorf("subcommand %q has neither Run nor subcommands", sub.Name)
		}
	}
	for _, want := range []string{"login", "logout", "whoami", "browse", "plugins", "users", "audit", "version"} {
		if !seen[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}

func TestOnlyRejectTakesReason(t *testing.T) {
	t.Parallel()

	plugins := pluginsCommand()
	transitions := map[string]bool{
		"submit": false, "approve": false, "reject": true,
		"publish": false, "unpublish": false,
	}
	for _, sub := range plugins.Subcommands {
		wantReason, isTransition := transitions[sub.Name]
		if !isTransition {
			continue
		}
		delete(transitions, sub.Name)
		hasReason := sub.Flags != nil && sub.Flags().Lookup("reason") != nil
		if hasReason != wantReason {
			t.Errorf("%s: has --reason = %v, want %v", sub.Name, hasReason, wantReason)
		}
	}
	if len(transitions) > 0 {
		missing := make([]string, 0, len(transitions))
		for name := range transitions {
			missing = append(missing, name)
		}
		t.Errorf("missing transition commands: %s", strings.Join(missing, ", "))
	}
}
