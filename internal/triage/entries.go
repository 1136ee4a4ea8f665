package triage

import "fmt"

// EntryKind distinguishes the two row types of the entry list.
type EntryKind int

const (
	KindCommit EntryKind = iota
	KindPath
)

// Entry is one row of the flat display list. The list doubles as the visual
// tree: a commit entry is immediately followed by the path entries of its
// retained files, and commits sharing a PR group are contiguous. Entries
// reference commits and files by index rather than holding pointers.
type Entry struct {
	Kind      EntryKind
	CommitIdx int
	FileIdx   int // valid for KindPath only

	// PRLabel is set on the first commit of each PR group; the remaining
	// commits of the group render Indent spaces instead so their short ids
	// line up under the label.
	PRLabel string
	Indent  int
}

// BuildEntries turns an ordered commit sequence into the flat entry list.
//
// Commits are grouped by PR label ("#<number>", or "??" when no PR is
// associated). Groups appear in first-appearance order of their label, and
// commits keep their original relative order within a group, so two
// non-adjacent commits of the same PR become adjacent in the output. The
// indent is a single global value so rows align across groups.
func BuildEntries(commits []Commit) []Entry {
	type group struct {
		label   string
		commits []int
	}
	var groups []group

	for commitIdx, commit := range commits {
		label := "??"
		if commit.PR != 0 {
			label = fmt.Sprintf("#%d", commit.PR)
		}
		found := false
		for i := range groups {
			if groups[i].label == label {
				groups[i].commits = append(groups[i].commits, commitIdx)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, group{label: label, commits: []int{commitIdx}})
		}
	}

	// +1 for the space after the label.
	indent := 0
	for _, g := range groups {
		if n := len(g.label) + 1; n > indent {
			indent = n
		}
	}

	var entries []Entry
	for _, g := range groups {
		for i, commitIdx := range g.commits {
			label := ""
			if i == 0 {
				label = g.label
			}
			entries = append(entries, Entry{
				Kind:      KindCommit,
				CommitIdx: commitIdx,
				PRLabel:   label,
				Indent:    indent,
			})
			for fileIdx := range commits[commitIdx].Files {
				entries = append(entries, Entry{
					Kind:      KindPath,
					CommitIdx: commitIdx,
					FileIdx:   fileIdx,
					Indent:    indent,
				})
			}
		}
	}
	return entries
}

// FirstEntry returns the index of the first path entry, or 0 when the list
// contains no path entry at all.
func FirstEntry(entries []Entry) int {
	for i, e := range entries {
		if e.Kind == KindPath {
			return i
		}
	}
	return 0
}
