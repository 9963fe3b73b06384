// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for eltool.
//
// This package implements the Cobra command hierarchy: version derivation,
// project regeneration, source formatting, bundle assembly, installer
// generation, DLL staging, the OSC sender and listener, and configuration
// management. Handlers receive an *App carrying configuration, logging and
// the external tool runner, and report exit codes through ExitError.
package cmd
