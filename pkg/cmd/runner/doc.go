// Package runner executes external commands and captures their results.
//
// The runner never interprets a non-zero exit code as a Go error. Callers use
// Check to turn a failed CommandResult into a *CommandError when the failure
// should abort the current step.
package runner
