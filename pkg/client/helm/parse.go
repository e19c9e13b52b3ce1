package helm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
)

// NoRepositoriesMessage is the stderr helm prints, with a non-zero exit, when
// no repository is registered.
const NoRepositoriesMessage = "Error: no repositories to show"

// ParseRepositories translates the result of `helm repo list -o json`.
// The no-repositories error is an empty list, not a failure.
func ParseRepositories(result runner.CommandResult) ([]RepositoryEntry, error) {
	if !result.Succeeded() {
		if strings.TrimSpace(result.Stderr) == NoRepositoriesMessage {
			return nil, nil
		}

		return nil, runner.Check(result)
	}

	var entries []RepositoryEntry

	err := decodeList(result.Stdout, &entries)
	if err != nil {
		return nil, fmt.Errorf("parse helm repositories: %w", err)
	}

	return entries, nil
}

// ParseReleases translates the stdout of `helm list -o json`.
func ParseReleases(stdout string) ([]ReleaseInfo, error) {
	var releases []ReleaseInfo

	err := decodeList(stdout, &releases)
	if err != nil {
		return nil, fmt.Errorf("parse helm releases: %w", err)
	}

	return releases, nil
}

// HasRepository reports whether a repository with exactly this name is registered.
func HasRepository(entries []RepositoryEntry, name string) bool {
	for _, entry := range entries {
		if entry.Name == name {
			return true
		}
	}

	return false
}

// HasRelease reports whether a release with exactly this name is listed.
func HasRelease(releases []ReleaseInfo, name string) bool {
	for _, release := range releases {
		if release.Name == name {
			return true
		}
	}

	return false
}

func decodeList(stdout string, target any) error {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil
	}

	err := json.Unmarshal([]byte(trimmed), target)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}
