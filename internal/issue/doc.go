// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown
// diagnostics for the failures eltool users can fix themselves: missing
// external tools, unreadable configuration, bad bundle requests.
package issue
