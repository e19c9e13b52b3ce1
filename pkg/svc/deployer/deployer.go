package deployer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/client/helm"
	"github.com/devantler-tech/awxctl/pkg/client/kubectl"
	"github.com/devantler-tech/awxctl/pkg/io/generator"
	awxgenerator "github.com/devantler-tech/awxctl/pkg/io/generator/awx"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
)

const (
	// ManifestFileName is the AWX instance manifest written to the working directory.
	ManifestFileName = "awx-instance.yaml"

	resourceKind = "awx"
	crdKind      = "crd"
)

// AppConfig is what gets deployed: the operator chart and the AWX instance.
type AppConfig struct {
	Operator v1alpha1.OperatorSpec
	Instance v1alpha1.InstanceSpec
}

// Deployer installs and removes AWX on an existing cluster.
type Deployer struct {
	helm      helm.Interface
	kubectl   kubectl.Interface
	generator generator.Generator[awxgenerator.Instance]
	workDir   string
}

// NewDeployer creates a deployer. Both clients must target the cluster's context.
func NewDeployer(helmClient helm.Interface, kubectlClient kubectl.Interface, workDir string) *Deployer {
	return &Deployer{
		helm:      helmClient,
		kubectl:   kubectlClient,
		generator: awxgenerator.NewAWXGenerator(),
		workDir:   workDir,
	}
}

// ManifestPath is where the AWX instance manifest is written.
func (d *Deployer) ManifestPath() string {
	return filepath.Join(d.workDir, ManifestFileName)
}

// Deploy installs or upgrades the operator release, then renders and applies
// the instance manifest. Repeating it converges on the same state.
func (d *Deployer) Deploy(ctx context.Context, app AppConfig) error {
	err := helm.InstallOrUpgradeChart(ctx, d.helm, helm.RepositoryEntry{
		Name: app.Operator.RepoName,
		URL:  app.Operator.RepoURL,
	}, helm.ChartSpec{
		ReleaseName:     app.Operator.Release,
		ChartName:       app.Operator.ChartRef(),
		Namespace:       app.Operator.Namespace,
		Version:         app.Operator.Version,
		CreateNamespace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to deploy awx operator: %w", err)
	}

	manifestPath := d.ManifestPath()

	_, err = d.generator.Generate(
		awxgenerator.Instance{Namespace: app.Operator.Namespace, Spec: app.Instance},
		generator.Options{Output: manifestPath},
	)
	if err != nil {
		return fmt.Errorf("%w: %w", svcerrors.ErrArtifactWrite, err)
	}

	err = d.kubectl.Apply(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("failed to apply awx instance: %w", err)
	}

	return nil
}

// InstanceExists reports whether the AWX resource exists. Without the AWX
// CRD there can be no instance.
func (d *Deployer) InstanceExists(ctx context.Context, app AppConfig) (bool, error) {
	registered, err := d.kubectl.Exists(ctx, crdKind, awxgenerator.CRDName, "")
	if err != nil || !registered {
		return false, err
	}

	exists, err := d.kubectl.Exists(ctx, resourceKind, app.Instance.Name, app.Operator.Namespace)
	if err != nil {
		return false, fmt.Errorf("failed to check awx instance: %w", err)
	}

	return exists, nil
}

// Teardown deletes the AWX instance and uninstalls the operator release.
// Resources that are already gone are skipped.
func (d *Deployer) Teardown(ctx context.Context, app AppConfig) error {
	registered, err := d.kubectl.Exists(ctx, crdKind, awxgenerator.CRDName, "")
	if err != nil {
		return fmt.Errorf("failed to check awx crd: %w", err)
	}

	if registered {
		err = d.deleteInstance(ctx, app)
		if err != nil {
			return err
		}
	}

	_, err = helm.UninstallIfPresent(ctx, d.helm, app.Operator.Release, app.Operator.Namespace)
	if err != nil {
		return fmt.Errorf("failed to uninstall awx operator: %w", err)
	}

	return nil
}

func (d *Deployer) deleteInstance(ctx context.Context, app AppConfig) error {
	manifestPath := d.ManifestPath()

	_, statErr := os.Stat(manifestPath)

	var err error
	if errors.Is(statErr, os.ErrNotExist) {
		err = d.kubectl.Delete(ctx, resourceKind, app.Instance.Name, app.Operator.Namespace)
	} else {
		err = d.kubectl.DeleteFile(ctx, manifestPath)
	}

	if err != nil {
		return fmt.Errorf("failed to delete awx instance: %w", err)
	}

	return nil
}
