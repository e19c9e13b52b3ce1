// Package clusterprovisioner defines the contract for managing the local
// Kubernetes cluster that hosts AWX.
//
// The kind subpackage implements it by driving the kind and kubectl binaries.
package clusterprovisioner
