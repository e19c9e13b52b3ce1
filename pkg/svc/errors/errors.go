// Package svcerrors defines the error kinds shared by the provisioning and
// lifecycle services.
//
// Every failure surfaced by awxctl wraps exactly one of these sentinels so
// command handlers can classify it with errors.Is.
package svcerrors

import "errors"

var (
	// ErrPrerequisiteUnmet is returned when a resource threshold or a mandatory tool check fails.
	// It aborts the run before any mutating command is issued.
	ErrPrerequisiteUnmet = errors.New("prerequisite unmet")

	// ErrUnsupportedPlatform is returned when no install recipe exists for a tool on the detected OS family.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrCommandFailure is returned when an external command exits non-zero.
	ErrCommandFailure = errors.New("command failed")

	// ErrClusterNotReady is returned when the cluster readiness poll is exhausted.
	ErrClusterNotReady = errors.New("cluster not ready")

	// ErrWorkloadNotReady is returned when a workload readiness poll is exhausted.
	ErrWorkloadNotReady = errors.New("workload not ready")

	// ErrTransientNotFound is returned when a resource that is expected to appear
	// (such as the admin password secret) did not materialize within the polling window.
	ErrTransientNotFound = errors.New("resource not yet available")

	// ErrArtifactWrite is returned when a generated descriptor or manifest cannot be written.
	ErrArtifactWrite = errors.New("failed to write generated artifact")

	// ErrInvalidTransition is returned when a lifecycle operation is requested from a state that does not allow it.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)
