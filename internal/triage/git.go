package triage

import (
	"fmt"
	"os/exec"
	"strings"
)

// CollectCommits walks the history between revision and HEAD in topological
// order, oldest first, diffing each commit against its first parent. Commits
// whose retained file diffs are empty after filtering are dropped.
func CollectCommits(repoPath, revision string, filter *Filter) ([]Commit, error) {
	out, err := runGit(repoPath, "rev-list", "--topo-order", "--reverse", revision+"..HEAD")
	if err != nil {
		return nil, fmt.Errorf("walk %s..HEAD: %w", revision, err)
	}

	var commits []Commit
	for _, sha := range strings.Fields(out) {
		commit, err := buildCommit(repoPath, sha, filter)
		if err != nil {
			return nil, err
		}
		if len(commit.Files) == 0 {
			continue
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func buildCommit(repoPath, sha string, filter *Filter) (Commit, error) {
	// %x1f separators keep one exec per commit for the metadata.
	meta, err := runGit(repoPath, "show", "-s", "--format=%H%x1f%h%x1f%s", sha)
	if err != nil {
		return Commit{}, fmt.Errorf("show %s: %w", sha, err)
	}

	parts := strings.SplitN(strings.TrimRight(meta, "\n"), "\x1f", 3)
	if len(parts) != 3 {
		return Commit{}, fmt.Errorf("unexpected metadata for %s: %q", sha, meta)
	}
	message := strings.TrimSpace(parts[2])
	if message == "" {
		message = "<no message>"
	}

	patch, err := firstParentPatch(repoPath, sha)
	if err != nil {
		return Commit{}, err
	}

	return Commit{
		ID:      parts[0],
		ShortID: parts[1],
		Message: message,
		Files:   parsePatch(patch, filter),
	}, nil
}

// firstParentPatch diffs sha against its first parent. Root commits have no
// parent and are diffed against the empty tree instead.
func firstParentPatch(repoPath, sha string) (string, error) {
	if _, err := runGit(repoPath, "rev-parse", "--verify", "--quiet", sha+"^"); err == nil {
		out, err := runGit(repoPath, "diff", "--no-color", sha+"^", sha)
		if err != nil {
			return "", fmt.Errorf("diff %s: %w", sha, err)
		}
		return out, nil
	}

	out, err := runGit(repoPath, "diff-tree", "--root", "--no-commit-id", "-p", "--no-color", sha)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", sha, err)
	}
	return out, nil
}

// parsePatch splits a raw unified diff into per-file diffs, dropping files
// whose path is filtered. Line origins follow git's patch markers, with
// header lines tagged 'F' and hunk headers 'H'.
func parsePatch(raw string, filter *Filter) []FileDiff {
	var (
		files    []FileDiff
		current  *FileDiff
		skipping bool
	)

	flush := func() {
		if current != nil {
			files = append(files, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.ToValidUTF8(strings.TrimRight(line, "\n"), "�")

		switch {
		case strings.HasPrefix(line, "diff --git "):
			flush()
			path := patchFilePath(line)
			skipping = path == "" || filter.Filtered(path)
			if !skipping {
				current = &FileDiff{Path: path}
				current.Lines = append(current.Lines, DiffLine{Origin: OriginFileHeader, Content: line})
			}

		case skipping || current == nil:
			// Between files, or inside a filtered one.

		case strings.HasPrefix(line, "@@"):
			current.Lines = append(current.Lines, DiffLine{Origin: OriginHunkHeader, Content: line})

		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, "-"):
			if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
				current.Lines = append(current.Lines, DiffLine{Origin: OriginFileHeader, Content: line})
				break
			}
			current.Lines = append(current.Lines, DiffLine{Origin: line[0], Content: line[1:]})

		case strings.HasPrefix(line, " "):
			current.Lines = append(current.Lines, DiffLine{Origin: OriginContext, Content: line[1:]})

		case line == "":
			// Trailing blank from the final newline split.

		default:
			// index/mode/rename/binary notices belong to the header.
			current.Lines = append(current.Lines, DiffLine{Origin: OriginFileHeader, Content: line})
		}
	}
	flush()
	return files
}

// patchFilePath extracts the post-image path from a "diff --git a/x b/x"
// line, falling back to the pre-image side for deletions.
func patchFilePath(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return ""
	}
	if path := strings.TrimPrefix(fields[3], "b/"); path != "/dev/null" {
		return path
	}
	return strings.TrimPrefix(fields[2], "a/")
}

// MostRecentTag returns the closest ancestor tag of HEAD, used as the
// default base revision.
func MostRecentTag(repoPath string) (string, error) {
	out, err := runGit(repoPath, "describe", "--tags", "--abbrev=0")
	if err != nil {
		return "", fmt.Errorf("no previous tag found; specify a revision explicitly: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ResolveRevision verifies that rev names a commit, so unresolvable input
// fails before the interactive session starts.
func ResolveRevision(repoPath, rev string) error {
	if _, err := runGit(repoPath, "rev-parse", "--verify", "--quiet", rev+"^{commit}"); err != nil {
		return fmt.Errorf("cannot resolve revision %q: %w", rev, err)
	}
	return nil
}

// IsRepository reports whether repoPath is inside a git work tree.
func IsRepository(repoPath string) bool {
	_, err := runGit(repoPath, "rev-parse", "--git-dir")
	return err == nil
}

func runGit(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", repoPath}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
