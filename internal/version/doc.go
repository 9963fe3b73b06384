// SPDX-License-Identifier: MPL-2.0

// Package version derives a release version string from a base semantic
// version and repository metadata (working tree state and commit count).
//
// Two repository backends are provided. ExecRepository shells out to git
// through a toolexec.Runner; GitRepository reads the repository in-process
// with go-git. When no repository is available the base is returned
// unchanged.
package version
