// Package v1alpha1 contains the awxctl configuration API: the cluster
// descriptor, the operator chart location, the AWX instance, host resource
// thresholds and polling bounds.
package v1alpha1
