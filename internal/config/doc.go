// SPDX-License-Identifier: MPL-2.0

// Package config handles eltool configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/eltool/config.cue on Linux,
// ~/Library/Application Support/eltool/config.cue on macOS and
// %APPDATA%\eltool\config.cue on Windows, falling back to ./config.cue.
// Files are validated against the embedded config_schema.cue before being
// merged over the defaults. ELTOOL_* environment variables override both.
package config
