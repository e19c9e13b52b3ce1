// Package k8s groups the Kubernetes helpers awxctl uses on top of kubectl output.
//
// The [readiness] sub-package evaluates node and deployment readiness and
// polls with a bounded backoff. The [kubeconfig] sub-package inspects the
// kubeconfig file for the cluster context.
package k8s
