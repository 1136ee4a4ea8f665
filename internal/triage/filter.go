package triage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ComponentFile is the project-local file naming extra filtered path
// components, one per line.
const ComponentFile = ".filtered_components.txt"

// DefaultComponents are path components that never count as meaningful
// source changes: CI config, manifests, lockfiles, fixtures, tests.
var DefaultComponents = []string{
	".github",
	"CHANGELOG.md",
	"go.mod",
	"go.sum",
	"examples",
	"fixtures",
	"tests",
	"testdata",
	"vendor",
}

// Filter decides whether a changed file counts as meaningful. A path is
// filtered out when any of its components exactly equals a set member.
type Filter struct {
	components map[string]bool
}

// NewFilter builds a filter from the default components plus any extras.
func NewFilter(extra ...string) *Filter {
	f := &Filter{components: make(map[string]bool)}
	for _, c := range DefaultComponents {
		f.components[c] = true
	}
	for _, c := range extra {
		if c = strings.TrimSpace(c); c != "" {
			f.components[c] = true
		}
	}
	return f
}

// LoadFilter builds a filter from the defaults merged with the component
// file under repoPath, if present. A missing file is not an error.
func LoadFilter(repoPath string) (*Filter, error) {
	extra, err := readComponentFile(filepath.Join(repoPath, ComponentFile))
	if err != nil {
		return nil, err
	}
	return NewFilter(extra...), nil
}

// Filtered reports whether path should be excluded from triage.
func (f *Filter) Filtered(path string) bool {
	for _, component := range strings.Split(path, "/") {
		if f.components[component] {
			return true
		}
	}
	return false
}

func readComponentFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", ComponentFile, err)
	}
	defer file.Close()

	var components []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		components = append(components, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", ComponentFile, err)
	}
	return components, nil
}

// AppendComponent appends one component name to the component file under
// repoPath, creating the file if needed. The file is append-only; there is
// no removal or deduplication.
func AppendComponent(repoPath, component string) error {
	component = strings.TrimSpace(component)
	if component == "" {
		return nil
	}

	path := filepath.Join(repoPath, ComponentFile)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", ComponentFile, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, component); err != nil {
		return fmt.Errorf("append to %s: %w", ComponentFile, err)
	}
	return nil
}
