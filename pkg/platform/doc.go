// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform naming rules used when laying out
// build artifacts: OS identifiers, VST3 architecture directory names and
// Windows reserved filenames that cannot be used for bundle or installer names.
package platform
