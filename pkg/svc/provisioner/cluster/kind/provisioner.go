package kindprovisioner

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	kindclient "github.com/devantler-tech/awxctl/pkg/client/kind"
	"github.com/devantler-tech/awxctl/pkg/client/kubectl"
	"github.com/devantler-tech/awxctl/pkg/io/generator"
	kindgenerator "github.com/devantler-tech/awxctl/pkg/io/generator/kind"
	"github.com/devantler-tech/awxctl/pkg/k8s/kubeconfig"
	"github.com/devantler-tech/awxctl/pkg/k8s/readiness"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	clusterprovisioner "github.com/devantler-tech/awxctl/pkg/svc/provisioner/cluster"
	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"
)

// ConfigFileName is the descriptor written to the working directory on create.
const ConfigFileName = "kind-config.yaml"

// KindClusterProvisioner manages kind clusters through the kind and kubectl binaries.
type KindClusterProvisioner struct {
	kind      kindclient.Interface
	kubectl   kubectl.Interface
	generator generator.Generator[*v1alpha4.Cluster]
	workDir   string
	backoff   readiness.Backoff
}

var _ clusterprovisioner.ClusterProvisioner = (*KindClusterProvisioner)(nil)

// NewKindClusterProvisioner constructs a provisioner. kubectlClient must target
// the cluster's context. The descriptor is written to workDir.
func NewKindClusterProvisioner(
	kindClient kindclient.Interface,
	kubectlClient kubectl.Interface,
	workDir string,
	backoff readiness.Backoff,
) *KindClusterProvisioner {
	return &KindClusterProvisioner{
		kind:      kindClient,
		kubectl:   kubectlClient,
		generator: kindgenerator.NewKindGenerator(),
		workDir:   workDir,
		backoff:   backoff,
	}
}

// ConfigPath is where the cluster descriptor is written.
func (k *KindClusterProvisioner) ConfigPath() string {
	return filepath.Join(k.workDir, ConfigFileName)
}

// EnsureCluster creates the cluster at most once, makes sure the kubeconfig
// carries the cluster's context and then waits for readiness.
func (k *KindClusterProvisioner) EnsureCluster(
	ctx context.Context,
	spec v1alpha1.ClusterSpec,
) (bool, error) {
	exists, err := k.Exists(ctx, spec.Name)
	if err != nil {
		return false, err
	}

	created := false

	if !exists {
		err = k.create(ctx, spec)
		if err != nil {
			return false, err
		}

		created = true
	}

	err = k.ensureKubeconfig(ctx, spec)
	if err != nil {
		return created, err
	}

	err = k.waitForReadiness(ctx, spec.Name)
	if err != nil {
		return created, err
	}

	return created, nil
}

// Delete deletes the cluster when it exists.
func (k *KindClusterProvisioner) Delete(ctx context.Context, name string) (bool, error) {
	exists, err := k.Exists(ctx, name)
	if err != nil {
		return false, err
	}

	if !exists {
		return false, nil
	}

	err = k.kind.DeleteCluster(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete kind cluster: %w", err)
	}

	return true, nil
}

// List returns every kind cluster.
func (k *KindClusterProvisioner) List(ctx context.Context) ([]string, error) {
	clusters, err := k.kind.GetClusters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	return clusters, nil
}

// Exists matches the name exactly against the cluster list.
func (k *KindClusterProvisioner) Exists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, ErrEmptyClusterName
	}

	clusters, err := k.List(ctx)
	if err != nil {
		return false, err
	}

	return slices.Contains(clusters, name), nil
}

func (k *KindClusterProvisioner) create(ctx context.Context, spec v1alpha1.ClusterSpec) error {
	configPath := k.ConfigPath()

	_, err := k.generator.Generate(
		kindgenerator.NewCluster(spec),
		generator.Options{Output: configPath},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", svcerrors.ErrArtifactWrite, err)
	}

	err = k.kind.CreateCluster(ctx, spec.Name, configPath, spec.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kind cluster: %w", err)
	}

	return nil
}

// waitForReadiness retries failing kubectl calls until the budget is spent;
// the last failure is reported with ErrClusterNotReady.
func (k *KindClusterProvisioner) waitForReadiness(ctx context.Context, name string) error {
	err := readiness.Poll(ctx, k.backoff, func(ctx context.Context) (bool, error) {
		err := k.kubectl.ClusterInfo(ctx)
		if err != nil {
			return false, readiness.Retry(err)
		}

		nodes, err := k.kubectl.GetNodes(ctx)
		if err != nil {
			return false, readiness.Retry(err)
		}

		return readiness.AllNodesReady(nodes), nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return err
		}

		return fmt.Errorf("%w: %s: %w", svcerrors.ErrClusterNotReady, name, err)
	}

	return nil
}

func (k *KindClusterProvisioner) ensureKubeconfig(ctx context.Context, spec v1alpha1.ClusterSpec) error {
	found, err := kubeconfig.HasContext(spec.Kubeconfig, spec.KubeContext())
	if err != nil {
		return fmt.Errorf("failed to check kubeconfig: %w", err)
	}

	if found {
		return nil
	}

	err = k.kind.ExportKubeconfig(ctx, spec.Name, spec.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to export kubeconfig: %w", err)
	}

	return nil
}
