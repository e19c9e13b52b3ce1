package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes content to output, creating parent directories and
// replacing an existing file. It returns the content for chaining.
func WriteFile(content string, output string) (string, error) {
	if output == "" {
		return "", ErrEmptyOutputPath
	}

	output = filepath.Clean(output)

	dir := filepath.Dir(output)

	err := os.MkdirAll(dir, dirPermUserGroupRX)
	if err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	err = os.WriteFile(output, []byte(content), filePermUserRW)
	if err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", output, err)
	}

	return content, nil
}

// RemoveFile deletes path. It reports whether a file was removed; a missing
// file is not an error.
func RemoveFile(path string) (bool, error) {
	if path == "" {
		return false, ErrEmptyOutputPath
	}

	err := os.Remove(filepath.Clean(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("failed to remove file %s: %w", path, err)
}
