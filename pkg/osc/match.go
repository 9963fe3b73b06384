// SPDX-License-Identifier: MPL-2.0

package osc

import (
	"regexp"
	"strings"
)

// patternReplacer turns an OSC address pattern into a regular expression.
var patternReplacer = strings.NewReplacer(
	"[!", "[^",
	".", `\.`,
	"(", `\(`,
	")", `\)`,
	"*", "[^/]*",
	"{", "(",
	",", "|",
	"}", ")",
	"?", "[^/]",
)

// compilePattern compiles an OSC address pattern ('*', '?', '[...]' and
// '{a,b}') into an anchored regular expression.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("^" + patternReplacer.Replace(pattern) + "$")
}

// MatchAddress reports whether addr matches the OSC address pattern. The
// match is case sensitive. Invalid patterns match nothing.
func MatchAddress(pattern, addr string) bool {
	re, err := compilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(addr)
}
