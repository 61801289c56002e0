// SPDX-License-Identifier: Apache-2.0

// Package stubserver is a self-contained development backend implementing
// the HTTP contract the client speaks: registration, login, user info, the
// subscription tier catalog, upgrades and a health probe. State lives in
// memory; the process is meant for local runs and integration tests, not
// production.
package stubserver
