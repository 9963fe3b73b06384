// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ErrUnsupportedTarget is returned when an OS/architecture pair has no
// VST3 binary directory name.
var ErrUnsupportedTarget = errors.New("unsupported target")

// vst3Arch maps GOARCH values to the architecture prefixes used inside
// VST3 bundles on Linux and Windows.
var vst3Arch = map[string]string{
	"amd64": "x86_64",
	"386":   "x86",
	"arm64": "aarch64",
	"arm":   "armv7l",
}

// Host returns the OS and architecture eltool is running on.
func Host() (goos, goarch string) {
	return runtime.GOOS, runtime.GOARCH
}

// VST3BinaryDir returns the directory below <Name>.vst3/Contents that holds
// the plugin binary for the given target: "MacOS" on darwin,
// "<arch>-linux" on Linux and "<arch>-win" on Windows.
func VST3BinaryDir(goos, goarch string) (string, error) {
	if goos == Darwin {
		return "MacOS", nil
	}

	arch, ok := vst3Arch[goarch]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedTarget, goos, goarch)
	}
	if goos == Windows && goarch == "arm64" {
		arch = "arm64"
	}

	switch goos {
	case Linux:
		return arch + "-linux", nil
	case Windows:
		return arch + "-win", nil
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedTarget, goos, goarch)
	}
}

// ExecutableSuffix returns ".exe" for Windows targets and "" otherwise.
func ExecutableSuffix(goos string) string {
	if goos == Windows {
		return ".exe"
	}
	return ""
}
