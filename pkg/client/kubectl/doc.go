// Package kubectl drives the kubectl CLI against one kube context and decodes
// its JSON output into Kubernetes API types.
package kubectl
