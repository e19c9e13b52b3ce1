// Package svc provides the service layer of awxctl.
//
// This package contains the logic that coordinates between the root command
// and the clients for the external tools.
//
// Subpackages:
//   - probe: host resources, OS family and tool detection
//   - installer: platform install recipes for missing tools
//   - provisioner: kind cluster creation, readiness and deletion
//   - deployer: awx-operator release and AWX instance management
//   - lifecycle: state inference and the start, shutdown and cleanup transitions
//   - setup: the full deploy pipeline from host checks to the admin credential
//   - errors: the error kinds shared by all of the above
package svc
