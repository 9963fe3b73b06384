// SPDX-License-Identifier: MPL-2.0

// Package installer produces Windows distribution artifacts: NSIS installer
// scripts compiled with makensis, and staged runtime DLL directories.
package installer
