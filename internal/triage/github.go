package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// GitHub caps GraphQL query complexity, so commit ids are looked up in
// fixed-size batches. Batches run sequentially; a failed batch only means
// its commits keep no PR association.
const prBatchSize = 50

const prLookupTimeout = 30 * time.Second

var (
	// SSH format: git@github.com:owner/repo.git
	sshPattern = regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)

	// HTTPS format: https://github.com/owner/repo.git
	httpsPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?$`)

	// ErrNoGitHubRemote indicates the origin remote is not a GitHub URL.
	ErrNoGitHubRemote = errors.New("no GitHub remote found")
)

// ParseGitHubRemote extracts the owner/name pair from a git remote URL.
func ParseGitHubRemote(url string) (owner, name string, ok bool) {
	url = strings.TrimSpace(url)
	if matches := sshPattern.FindStringSubmatch(url); matches != nil {
		return matches[1], matches[2], true
	}
	if matches := httpsPattern.FindStringSubmatch(url); matches != nil {
		return matches[1], matches[2], true
	}
	return "", "", false
}

// RepoOwnerAndName resolves the GitHub owner/name of the origin remote.
func RepoOwnerAndName(repoPath string) (string, string, error) {
	out, err := runGit(repoPath, "remote", "get-url", "origin")
	if err != nil {
		return "", "", ErrNoGitHubRemote
	}
	owner, name, ok := ParseGitHubRemote(out)
	if !ok {
		return "", "", ErrNoGitHubRemote
	}
	return owner, name, nil
}

// AnnotatePRs attaches associated pull request numbers to commits by
// querying GitHub through the gh CLI in batches. Returns whether any batch
// succeeded; failures degrade to commits without a PR association.
func AnnotatePRs(ctx context.Context, commits []Commit, owner, name string) bool {
	success := false
	for start := 0; start < len(commits); start += prBatchSize {
		end := min(start+prBatchSize, len(commits))
		if annotateBatch(ctx, commits[start:end], owner, name) {
			success = true
		}
	}
	return success
}

func annotateBatch(ctx context.Context, commits []Commit, owner, name string) bool {
	if len(commits) == 0 {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, prLookupTimeout)
	defer cancel()

	query := buildPRQuery(commits, owner, name)
	cmd := exec.CommandContext(ctx, "gh", "api", "graphql", "-f", "query="+query)
	out, err := cmd.Output()
	if err != nil {
		return false
	}
	return applyPRResponse(out, commits)
}

// applyPRResponse maps the aliased GraphQL response back onto the batch.
// Commits whose alias is missing or carries no associated PR are left
// untouched.
func applyPRResponse(out []byte, commits []Commit) bool {
	var response struct {
		Data struct {
			Repository map[string]struct {
				AssociatedPullRequests struct {
					Nodes []struct {
						Number int `json:"number"`
					} `json:"nodes"`
				} `json:"associatedPullRequests"`
			} `json:"repository"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out, &response); err != nil {
		return false
	}
	if response.Data.Repository == nil {
		return false
	}

	for i := range commits {
		alias := fmt.Sprintf("c%d", i)
		obj, ok := response.Data.Repository[alias]
		if !ok {
			continue
		}
		if nodes := obj.AssociatedPullRequests.Nodes; len(nodes) > 0 {
			commits[i].PR = nodes[0].Number
		}
	}
	return true
}

// buildPRQuery aliases one object lookup per commit so a whole batch
// resolves in a single GraphQL round trip.
func buildPRQuery(commits []Commit, owner, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "query {\n  repository(owner: %q, name: %q) {\n", owner, name)
	for i, commit := range commits {
		fmt.Fprintf(&b, `    c%d: object(oid: %q) {
      ... on Commit {
        associatedPullRequests(first: 1) {
          nodes { number }
        }
      }
    }
`, i, commit.ID)
	}
	b.WriteString("  }\n}")
	return b.String()
}
