// SPDX-License-Identifier: MPL-2.0

// Package toolexec runs the external tools eltool drives (git, Projucer,
// clang-format, makensis) behind a small capability interface so commands
// can be tested without the tools installed.
package toolexec
