package clusterprovisioner

import (
	"context"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
)

// ClusterProvisioner defines methods for managing the local cluster.
type ClusterProvisioner interface {
	// EnsureCluster creates the cluster when it does not exist and waits until
	// it is reachable with every node ready. It reports whether it created it.
	EnsureCluster(ctx context.Context, spec v1alpha1.ClusterSpec) (bool, error)

	// Delete removes the cluster. It reports whether a cluster was deleted;
	// an absent cluster is not an error.
	Delete(ctx context.Context, name string) (bool, error)

	// List lists all clusters.
	List(ctx context.Context) ([]string, error)

	// Exists checks if a cluster with exactly this name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ConfigPath is where the cluster descriptor is written on create.
	ConfigPath() string
}
