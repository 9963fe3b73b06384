// SPDX-License-Identifier: MPL-2.0

// Package testutil holds fixture helpers shared by the eltool tests. Helpers
// that change process state (environment, working directory) undo the
// change through t.Cleanup.
package testutil
