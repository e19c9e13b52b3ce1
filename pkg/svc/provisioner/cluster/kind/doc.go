// Package kindprovisioner manages the kind cluster: it renders the cluster
// descriptor, creates and deletes the cluster with the kind binary, and waits
// for the API server and nodes through kubectl.
package kindprovisioner
