// Package readiness provides the bounded polling primitive and the readiness
// predicates used while waiting for the cluster and its workloads.
//
// Key features:
//   - Bounded polling with a fixed interval and attempt budget (Poll)
//   - Deployment readiness (DeploymentReady)
//   - Node readiness (AllNodesReady)
package readiness
