package readiness

import (
	corev1 "k8s.io/api/core/v1"
)

// AllNodesReady reports whether the list holds at least one node and every
// node has condition Ready=True.
func AllNodesReady(nodes *corev1.NodeList) bool {
	if nodes == nil || len(nodes.Items) == 0 {
		return false
	}

	for i := range nodes.Items {
		if !isNodeReady(&nodes.Items[i]) {
			return false
		}
	}

	return true
}

// isNodeReady returns true if the node has condition Ready=True.
func isNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}

	return false
}
