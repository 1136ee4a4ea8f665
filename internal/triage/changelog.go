package triage

import (
	"fmt"
	"os"
	"strings"
)

// Changelog renders the commit entries as a Markdown bullet list with
// commit links. Output order matches the grouped entry order, so the
// changelog reads the same way the list was just browsed.
func Changelog(entries []Entry, commits []Commit, owner, name string) string {
	var b strings.Builder
	for _, e := range entries {
		if e.Kind != KindCommit {
			continue
		}
		commit := commits[e.CommitIdx]
		fmt.Fprintf(&b, "- %s [%s](https://github.com/%s/%s/commit/%s)\n",
			commit.Message, commit.ShortID, owner, name, commit.ID)
	}
	return b.String()
}

// WriteChangelog writes content to path, refusing to overwrite an existing
// file.
func WriteChangelog(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists; not overwriting", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
