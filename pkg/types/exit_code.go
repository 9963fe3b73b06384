// SPDX-License-Identifier: MPL-2.0

package types

// maxExitStatus is the largest status a POSIX process can report.
const maxExitStatus = 255

// Exit statuses of eltool itself. External tools may report any status in
// 0-255 and are passed through unchanged.
const (
	ExitSuccess ExitCode = 0
	// ExitFailure covers missing required arguments, unreachable hosts,
	// failed sends and missing external tools.
	ExitFailure ExitCode = 1
	// ExitUsage is returned for arguments that name an unknown kind of
	// artifact (for example an unsupported bundle type).
	ExitUsage ExitCode = 2
)

// ExitCode is the status eltool exits with, or the status an external tool
// such as git, makensis or clang-format reported.
type ExitCode int

// ProcessExitCode converts the status reported by os/exec. A process killed
// by a signal reports -1, and anything outside 0-255 becomes ExitFailure.
func ProcessExitCode(status int) ExitCode {
	if status < 0 || status > maxExitStatus {
		return ExitFailure
	}
	return ExitCode(status)
}

// IsSuccess reports whether c is ExitSuccess.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }
