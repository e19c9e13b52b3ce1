// Package cli holds the command line surface of awxctl.
//
//   - cli/cmd: the root command and its lifecycle mode flags
//   - cli/ui/errorhandler: command execution with normalized errors and hints
package cli
