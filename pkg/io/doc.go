// Package io provides the configuration and artifact I/O used by awxctl.
//
// Subpackages:
//   - config-manager: loading awxctl.yaml, environment and flags through viper
//   - generator: rendering the kind cluster descriptor and the AWX manifest
//   - marshaller: YAML serialization shared by the generators
//
// For low-level file writes and removals, see the fsutil package.
package io
