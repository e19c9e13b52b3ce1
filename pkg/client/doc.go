// Package client groups the translators for the external CLIs awxctl drives:
//
//   - kind: local cluster creation and deletion
//   - helm: operator chart repository and release management
//   - kubectl: manifests, workload scaling, readiness and secrets
//
// Each translator parses tool output with exact-token rules and is tested
// against pinned sample outputs.
package client
