// Package apis provides API type definitions for awxctl configuration.
//
//   - awx/v1alpha1: the declarative awxctl.yaml configuration
//
// The API types follow Kubernetes API conventions and round-trip through YAML.
package apis
