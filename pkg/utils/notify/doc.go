// Package notify writes styled, symbol-prefixed messages for CLI users.
//
// Message types are title (custom emoji), activity (►), generate (✚),
// success (✔), warning (⚠), error (✗) and info (ℹ). [StageSeparatingWriter]
// inserts a blank line before each title so pipeline stages read as blocks.
package notify
