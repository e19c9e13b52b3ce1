package kubectl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

var errEmptyOutput = errors.New("kubectl returned no output")

// ParseNames returns the "kind.group/name" tokens printed by `-o name`, one per line.
func ParseNames(output string) []string {
	var names []string

	for line := range strings.SplitSeq(output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}

		names = append(names, name)
	}

	return names
}

// ParseClientVersion returns the client gitVersion of `kubectl version --client -o json`.
func ParseClientVersion(output string) (string, error) {
	var version struct {
		ClientVersion struct {
			GitVersion string `json:"gitVersion"`
		} `json:"clientVersion"`
	}

	err := decodeObject(output, &version)
	if err != nil {
		return "", fmt.Errorf("parse kubectl version: %w", err)
	}

	return version.ClientVersion.GitVersion, nil
}

func decodeObject(stdout string, target any) error {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return errEmptyOutput
	}

	err := json.Unmarshal([]byte(trimmed), target)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}
