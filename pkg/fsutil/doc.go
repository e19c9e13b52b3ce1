// Package fsutil provides the filesystem helpers used for generated artifacts:
// WriteFile writes rendered content and RemoveFile deletes it, treating an
// already missing file as removed.
package fsutil
