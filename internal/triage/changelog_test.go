package triage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChangelog_Basic(t *testing.T) {
	commits := []Commit{
		makeCommit("abc1234", "abc1234abc1234abc1234abc1234abc1234abc1234", "Fix the widget", 42),
		makeCommit("def5678", "def5678def5678def5678def5678def5678def5678", "Update tests", 0),
	}
	entries := BuildEntries(commits)

	got := Changelog(entries, commits, "owner", "repo")
	want := "- Fix the widget [abc1234](https://github.com/owner/repo/commit/abc1234abc1234abc1234abc1234abc1234abc1234)\n" +
		"- Update tests [def5678](https://github.com/owner/repo/commit/def5678def5678def5678def5678def5678def5678)\n"
	if got != want {
		t.Errorf("Changelog() =\n%q\nwant\n%q", got, want)
	}
}

func TestChangelog_FollowsGroupedOrder(t *testing.T) {
	// Bullet order matches the grouped entry order the reviewer browsed,
	// not the chronological input order.
	commits := []Commit{
		makeCommit("aaa", "aaa", "first", 1),
		makeCommit("bbb", "bbb", "second", 2),
		makeCommit("ccc", "ccc", "third", 1),
	}
	entries := BuildEntries(commits)

	got := Changelog(entries, commits, "o", "r")
	want := "- first [aaa](https://github.com/o/r/commit/aaa)\n" +
		"- third [ccc](https://github.com/o/r/commit/ccc)\n" +
		"- second [bbb](https://github.com/o/r/commit/bbb)\n"
	if got != want {
		t.Errorf("Changelog() =\n%q\nwant\n%q", got, want)
	}
}

func TestChangelog_Idempotent(t *testing.T) {
	commits := []Commit{
		makeCommit("aaa", "aaa", "first", 1, "a.go"),
		makeCommit("bbb", "bbb", "second", 0),
	}
	entries := BuildEntries(commits)

	first := Changelog(entries, commits, "o", "r")
	second := Changelog(entries, commits, "o", "r")
	if first != second {
		t.Errorf("repeated renders differ:\n%q\n%q", first, second)
	}
}

func TestChangelog_Empty(t *testing.T) {
	if got := Changelog(nil, nil, "o", "r"); got != "" {
		t.Errorf("Changelog(nil) = %q, want empty", got)
	}
}

func TestWriteChangelog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposed_changelog.md")

	if err := WriteChangelog(path, "- hello\n"); err != nil {
		t.Fatalf("WriteChangelog() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "- hello\n" {
		t.Errorf("written content = %q, want %q", data, "- hello\n")
	}
}

func TestWriteChangelog_RefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proposed_changelog.md")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteChangelog(path, "- new\n"); err == nil {
		t.Fatal("WriteChangelog() error = nil, want refusal to overwrite")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous" {
		t.Errorf("existing file was modified: %q", data)
	}
}
