// SPDX-License-Identifier: MPL-2.0

package types

import "testing"

func TestProcessExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   ExitCode
	}{
		{name: "success", status: 0, want: ExitSuccess},
		{name: "git fatal", status: 128, want: 128},
		{name: "highest status", status: 255, want: 255},
		{name: "signalled", status: -1, want: ExitFailure},
		{name: "out of range", status: 256, want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ProcessExitCode(tt.status); got != tt.want {
				t.Errorf("ProcessExitCode(%d) = %d, want %d", tt.status, got, tt.want)
			}
		})
	}
}

func TestExitCode_IsSuccess(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() || ExitFailure.IsSuccess() || ExitCode(128).IsSuccess() {
		t.Error("IsSuccess() only holds for ExitSuccess")
	}
}
