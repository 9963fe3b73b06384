// SPDX-License-Identifier: MPL-2.0

// Package bundle assembles directory-based plugin and application bundles:
// macOS applications, Audio Unit components, VST3 plugins and macOS
// frameworks.
//
// A Definition is validated completely before anything is written, so an
// invalid request never leaves a partial bundle behind.
package bundle
