// SPDX-License-Identifier: Apache-2.0

// Package client implements the demo client runtime: a line-oriented shell
// over the session manager so the core can be exercised end to end against
// a backend. It wires configuration, storage, transport, connectivity
// watching and the service layer into a single process lifecycle.
package client
