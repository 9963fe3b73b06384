// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	GitNotFoundId
	ProjucerNotFoundId
	ClangFormatNotFoundId
	MakensisNotFoundId
	ProjectNotFoundId
	InvalidBundleTypeId
	PlistRequiredId
	HostUnreachableId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where eltool looks for its configuration:
~~~
$ eltool config path
~~~

- Print the effective configuration with defaults applied:
~~~
$ eltool config show
~~~

- Regenerate a fresh file with every default written out:
~~~
$ eltool config init --force
~~~`,
	}

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# git was not found!

The ` + "`exec`" + ` version backend runs the git executable to read the working tree
state and count commits.

## Things you can try:
- Install git and make sure it is on your PATH
- Point eltool at a specific git binary:
~~~cue
tools: git: "/usr/local/bin/git"
~~~

- Use the built-in backend that needs no git executable:
~~~
$ eltool version --backend git
~~~`,
		extLinks: []HttpLink{"https://git-scm.com/downloads"},
	}

	projucerNotFoundIssue = &Issue{
		id: ProjucerNotFoundId,
		mdMsg: `
# Projucer was not found!

Project files are regenerated by running ` + "`Projucer --resave`" + `.

## Things you can try:
- Build Projucer from the JUCE sources (extras/Projucer)
- Tell eltool where it lives, environment variables are expanded:
~~~cue
tools: projucer: "$HOME/JUCE/Projucer"
~~~

- On headless Linux machines wrap it in a virtual display:
~~~cue
tools: projucer: "xvfb-run -a Projucer"
~~~`,
		extLinks: []HttpLink{"https://juce.com/discover/projucer"},
	}

	clangFormatNotFoundIssue = &Issue{
		id: ClangFormatNotFoundId,
		mdMsg: `
# clang-format was not found!

Source formatting is delegated to clang-format, using the .clang-format file
at the repository root.

## Things you can try:
- Install clang-format from your LLVM distribution
- Select a versioned binary:
~~~cue
tools: clang_format: "clang-format-18"
~~~

- On macOS with Xcode only:
~~~cue
tools: clang_format: "xcrun clang-format"
~~~`,
		extLinks: []HttpLink{"https://clang.llvm.org/docs/ClangFormat.html"},
	}

	makensisNotFoundIssue = &Issue{
		id: MakensisNotFoundId,
		mdMsg: `
# makensis was not found!

Windows installers are compiled with NSIS.

## Things you can try:
- Install NSIS and make sure makensis is on your PATH
- Only write the script and compile it elsewhere:
~~~
$ eltool installer nsis --dry-run ...
~~~`,
		extLinks: []HttpLink{"https://nsis.sourceforge.io/Download"},
	}

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Project file not found!

One of the .jucer files passed to ` + "`eltool projucer resave`" + ` does not exist.

## Things you can try:
- Check the path relative to the current directory
- List the projects in the repository:
~~~
$ find . -name '*.jucer'
~~~`,
	}

	invalidBundleTypeIssue = &Issue{
		id: InvalidBundleTypeId,
		mdMsg: `
# Unknown bundle type!

## Supported types:
- **macapp**: macOS application (` + "`<Name>.app`" + `)
- **component**: Audio Unit plugin (` + "`<Name>.component`" + `)
- **vst3**: VST3 plugin (` + "`<Name>.vst3`" + `)
- **framework**: macOS framework (` + "`<Name>.framework`" + `)`,
	}

	plistRequiredIssue = &Issue{
		id: PlistRequiredId,
		mdMsg: `
# An Info.plist is required!

Application and Audio Unit bundles must carry the Info.plist produced by
your build.

## Things you can try:
- Pass it explicitly:
~~~
$ eltool bundle --type macapp --name Element --plist build/Info.plist
~~~

- Or keep it in a bundle manifest:
~~~toml
[bundle]
type = "macapp"
name = "Element"
plist = "build/Info.plist"
~~~`,
	}

	hostUnreachableIssue = &Issue{
		id: HostUnreachableId,
		mdMsg: `
# Could not reach the engine!

OSC messages are sent as UDP datagrams, so a failure here means the host
name could not be resolved or the network refused the packet.

## Things you can try:
- Check the host name and port, the default is localhost:9000
- Listen locally to see what is being sent:
~~~
$ eltool osc listen --port 9000
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Common causes:
- The output directory is owned by another user
- A previous bundle was created by a build running as root

## Things you can try:
- Check file and directory permissions
- Rebuild into a directory you own with ` + "`--out`" + ``,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		gitNotFoundIssue.Id():         gitNotFoundIssue,
		projucerNotFoundIssue.Id():    projucerNotFoundIssue,
		clangFormatNotFoundIssue.Id(): clangFormatNotFoundIssue,
		makensisNotFoundIssue.Id():    makensisNotFoundIssue,
		projectNotFoundIssue.Id():     projectNotFoundIssue,
		invalidBundleTypeIssue.Id():   invalidBundleTypeIssue,
		plistRequiredIssue.Id():       plistRequiredIssue,
		hostUnreachableIssue.Id():     hostUnreachableIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
	}

	// toolIssues maps external tool names to their not-found issue.
	toolIssues = map[string]Id{
		"git":          GitNotFoundId,
		"projucer":     ProjucerNotFoundId,
		"clang_format": ClangFormatNotFoundId,
		"makensis":     MakensisNotFoundId,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

// ForTool returns the not-found issue for a tool configuration key
// (git, projucer, clang_format, makensis), or nil.
func ForTool(name string) *Issue {
	id, ok := toolIssues[name]
	if !ok {
		return nil
	}
	return issues[id]
}
