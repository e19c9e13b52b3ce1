package fsutil

import "errors"

// ErrEmptyOutputPath is returned when an output path is empty.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

const (
	dirPermUserGroupRX = 0o750
	filePermUserRW     = 0o600
)
