// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		ConfigLoadFailedId,
		GitNotFoundId,
		ProjucerNotFoundId,
		ClangFormatNotFoundId,
		MakensisNotFoundId,
		ProjectNotFoundId,
		InvalidBundleTypeId,
		PlistRequiredId,
		HostUnreachableId,
		PermissionDeniedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if ConfigLoadFailedId != 1 {
		t.Errorf("ConfigLoadFailedId = %d, want 1", ConfigLoadFailedId)
	}
}

func TestIssue_ExtLinks(t *testing.T) {
	issue := Get(GitNotFoundId)
	if issue == nil {
		t.Fatal("Get(GitNotFoundId) returned nil")
	}

	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("ExtLinks() is empty")
	}

	// Modifying the returned slice must not affect the issue.
	original := links[0]
	links[0] = "modified"
	if issue.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(ProjucerNotFoundId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "Projucer --resave") {
		t.Error("Render() output should contain the Projucer invocation")
	}
	if !strings.Contains(rendered, "## See also") || !strings.Contains(rendered, "https://juce.com/discover/projucer") {
		t.Errorf("Render() output should list external links:\n%s", rendered)
	}
}

func TestIssue_Render_Glamour(t *testing.T) {
	rendered, err := Get(InvalidBundleTypeId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "vst3") {
		t.Errorf("Render() output should mention vst3:\n%s", rendered)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{GitNotFoundId, false, "git was not found"},
		{ProjucerNotFoundId, false, "Projucer was not found"},
		{ClangFormatNotFoundId, false, "clang-format was not found"},
		{MakensisNotFoundId, false, "makensis was not found"},
		{ProjectNotFoundId, false, "Project file not found"},
		{InvalidBundleTypeId, false, "Unknown bundle type"},
		{PlistRequiredId, false, "Info.plist is required"},
		{HostUnreachableId, false, "Could not reach the engine"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != 10 {
		t.Errorf("Values() returned %d issues, want 10", len(issues))
	}
	for _, issue := range issues {
		if issue.Id() == 0 {
			t.Error("found issue with ID 0")
		}
	}
}

func TestForTool(t *testing.T) {
	tests := map[string]Id{
		"git":          GitNotFoundId,
		"projucer":     ProjucerNotFoundId,
		"clang_format": ClangFormatNotFoundId,
		"makensis":     MakensisNotFoundId,
	}
	for tool, want := range tests {
		got := ForTool(tool)
		if got == nil || got.Id() != want {
			t.Errorf("ForTool(%q) = %v, want issue %d", tool, got, want)
		}
	}
	if ForTool("cmake") != nil {
		t.Error("ForTool(cmake) should return nil")
	}
}
