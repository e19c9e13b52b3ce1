package readiness

import (
	appsv1 "k8s.io/api/apps/v1"
)

// DesiredReplicas returns spec.replicas, defaulting to 1 like the API server does.
func DesiredReplicas(deployment *appsv1.Deployment) int32 {
	if deployment.Spec.Replicas == nil {
		return 1
	}

	return *deployment.Spec.Replicas
}

// DeploymentReady reports whether the controller has observed the latest
// generation and the ready and available replica counts reach the desired count.
// A deployment scaled to zero is ready once the controller has observed it.
func DeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment == nil {
		return false
	}

	if deployment.Status.ObservedGeneration < deployment.Generation {
		return false
	}

	desired := DesiredReplicas(deployment)

	return deployment.Status.ReadyReplicas >= desired &&
		deployment.Status.AvailableReplicas >= desired
}
