// Package difftest renders a readable diff between an expected and actual
// string for use in test failure messages, wrapping go-diff the same way
// go-tony's diff subcommand does.
package difftest

import "github.com/sergi/go-diff/diffmatchpatch"

// Diff returns a human-readable inline diff of want vs got, with
// insertions and deletions marked by ANSI colors. An empty string means
// they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
