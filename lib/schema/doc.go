// Copyright 2026 The Streamline Portal Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the wire types exchanged with the Streamline
// Portal REST API: plugin listings, manage-view records, users, audit
// entries, and the role and status enumerations that drive permission
// checks and lifecycle transitions on the client.
//
// The portal backend is authoritative for every field here. The client
// never derives state locally — it decodes what the server returns and
// requests transitions, so these types mirror the server's response
// models exactly.
package schema
