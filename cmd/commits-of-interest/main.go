// commits-of-interest is a TUI for triaging the commits between a revision
// and HEAD that touch meaningful source paths.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"commits-of-interest/internal/logging"
	"commits-of-interest/internal/triage"
)

var outputPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Changelog output path (default from config, proposed_changelog.md)")
}

var rootCmd = &cobra.Command{
	Use:   "commits-of-interest [revision]",
	Short: "Identify commits with meaningful code changes",
	Long: `commits-of-interest analyzes the commits between a given revision and HEAD,
filtering out changes to non-essential paths (e.g., CI configuration, lock
files, tests) and presenting the remaining commits in an interactive TUI for
review.

When no revision is given, the most recent tag is used.

The filtered components can be customized by adding a .filtered_components.txt
file to the repository root. Each non-empty line names an additional path
component to exclude. Pressing 'i' inside the TUI appends to that file.

Pressing 's' quits and writes a proposed changelog draft, one Markdown bullet
per commit with a link, in the same PR-grouped order the list was browsed in.
The changelog is never written over an existing file.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := triage.LoadConfig(triage.DefaultConfigPath())
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = cfg.Output
	}

	logger, err := logging.Setup(cfg.LogFile, cfg.LogLevel, true)
	if err != nil {
		return err
	}
	defer logging.Close()

	const repoPath = "."
	if !triage.IsRepository(repoPath) {
		return errors.New("not in a git repository")
	}

	revision, err := baseRevision(repoPath, args)
	if err != nil {
		return err
	}
	if err := triage.ResolveRevision(repoPath, revision); err != nil {
		return err
	}

	filter, err := triage.LoadFilter(repoPath)
	if err != nil {
		return err
	}

	commits, err := triage.CollectCommits(repoPath, revision, filter)
	if err != nil {
		return err
	}
	logger.Info("collected commits", "revision", revision, "count", len(commits))

	owner, name, err := triage.RepoOwnerAndName(repoPath)
	if err != nil {
		logger.Warn("no GitHub remote; commits will not be grouped by PR")
	} else if !triage.AnnotatePRs(context.Background(), commits, owner, name) {
		logger.Warn("PR lookup failed", "owner", owner, "name", name)
	}

	model := NewModel(triage.NewSession(commits), repoPath, revision, owner, name, logger)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	// The alternate screen is down now; anything user-facing goes to stderr.
	m := final.(Model)
	if !m.SaveRequested() {
		return nil
	}
	if owner == "" {
		return errors.New("could not determine GitHub repository URL")
	}
	session := m.Session()
	content := triage.Changelog(session.Entries, session.Commits, owner, name)
	if err := triage.WriteChangelog(outputPath, content); err != nil {
		return fmt.Errorf("error writing changelog: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Changelog written to %s\n", outputPath)
	return nil
}

func baseRevision(repoPath string, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	tag, err := triage.MostRecentTag(repoPath)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "No revision specified; using most recent tag: %s\n", tag)
	return tag, nil
}
