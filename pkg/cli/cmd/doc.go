// Package cmd provides the awxctl command line.
//
// The root command runs the full setup when called without a mode flag and
// otherwise dispatches to one lifecycle operation:
//   - --start: scale a stopped AWX back up and print the admin credential
//   - --shutdown: scale AWX down while keeping the cluster
//   - --cleanup: remove AWX, the cluster and the generated files
//   - --status: print the inferred lifecycle state
package cmd
