package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/client/kubectl"
	"github.com/devantler-tech/awxctl/pkg/fsutil"
	"github.com/devantler-tech/awxctl/pkg/k8s/readiness"
	"github.com/devantler-tech/awxctl/pkg/svc/deployer"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	clusterprovisioner "github.com/devantler-tech/awxctl/pkg/svc/provisioner/cluster"
	"github.com/devantler-tech/awxctl/pkg/utils/notify"
)

const passwordKey = "password"

// AppDeployer installs and removes the application on the cluster.
type AppDeployer interface {
	Deploy(ctx context.Context, app deployer.AppConfig) error
	InstanceExists(ctx context.Context, app deployer.AppConfig) (bool, error)
	Teardown(ctx context.Context, app deployer.AppConfig) error
	ManifestPath() string
}

// Credential is the AWX admin login.
type Credential struct {
	Username string
	Password string
}

// Controller runs lifecycle operations against one cluster and AWX instance.
type Controller struct {
	cluster  clusterprovisioner.ClusterProvisioner
	deployer AppDeployer
	kubectl  kubectl.Interface
	spec     v1alpha1.Spec
	writer   io.Writer
}

// NewController creates a controller. kubectlClient must target the cluster's
// context. Progress is written to writer.
func NewController(
	cluster clusterprovisioner.ClusterProvisioner,
	appDeployer AppDeployer,
	kubectlClient kubectl.Interface,
	spec v1alpha1.Spec,
	writer io.Writer,
) *Controller {
	return &Controller{
		cluster:  cluster,
		deployer: appDeployer,
		kubectl:  kubectlClient,
		spec:     spec,
		writer:   writer,
	}
}

// State infers the current state from the cluster.
func (c *Controller) State(ctx context.Context) (State, error) {
	exists, err := c.cluster.Exists(ctx, c.spec.Cluster.Name)
	if err != nil {
		return "", fmt.Errorf("failed to infer state: %w", err)
	}

	if !exists {
		return StateAbsent, nil
	}

	instance, err := c.deployer.InstanceExists(ctx, c.app())
	if err != nil {
		return "", fmt.Errorf("failed to infer state: %w", err)
	}

	if !instance {
		return StateAbsent, nil
	}

	operator, err := c.kubectl.GetDeployment(ctx, c.spec.Operator.Deployment, c.spec.Operator.Namespace)
	if errors.Is(err, kubectl.ErrNotFound) {
		return StateProvisioning, nil
	}

	if err != nil {
		return "", fmt.Errorf("failed to infer state: %w", err)
	}

	if readiness.DesiredReplicas(operator) == 0 {
		return StateStopped, nil
	}

	if !readiness.DeploymentReady(operator) {
		return StateProvisioning, nil
	}

	return StateRunning, nil
}

// Deploy ensures the cluster and deploys AWX onto it. It is allowed from any
// state and converges when repeated.
func (c *Controller) Deploy(ctx context.Context) (State, error) {
	notify.Activityf(c.writer, "ensuring cluster %q", c.spec.Cluster.Name)

	created, err := c.cluster.EnsureCluster(ctx, c.spec.Cluster)
	if err != nil {
		return "", err
	}

	if created {
		notify.Generatef(c.writer, "%s", c.cluster.ConfigPath())
		notify.Successf(c.writer, "cluster %q created", c.spec.Cluster.Name)
	} else {
		notify.Successf(c.writer, "cluster %q already exists", c.spec.Cluster.Name)
	}

	notify.Activityf(c.writer, "deploying awx operator %s", c.spec.Operator.ChartRef())

	err = c.deployer.Deploy(ctx, c.app())
	if err != nil {
		return "", err
	}

	notify.Generatef(c.writer, "%s", c.deployer.ManifestPath())
	notify.Successf(c.writer, "awx instance %q applied", c.spec.Instance.Name)

	return StateRunning, nil
}

// Shutdown scales the application workloads and then the operator to zero.
// Manifests stay on disk so Start can bring everything back.
func (c *Controller) Shutdown(ctx context.Context) (State, error) {
	err := c.requireState(ctx, StateRunning, "shut down")
	if err != nil {
		return "", err
	}

	for _, name := range c.spec.Instance.Deployments {
		err = c.scaleIfPresent(ctx, name, 0)
		if err != nil {
			return "", err
		}
	}

	err = c.scaleIfPresent(ctx, c.spec.Operator.Deployment, 0)
	if err != nil {
		return "", err
	}

	notify.Successf(c.writer, "awx is stopped")

	return StateStopped, nil
}

// Start scales the operator and then the application workloads back to one
// replica, waiting for each, and retrieves the admin credential once.
// A credential failure is returned together with StateRunning.
func (c *Controller) Start(ctx context.Context) (State, Credential, error) {
	err := c.requireState(ctx, StateStopped, "start")
	if err != nil {
		return "", Credential{}, err
	}

	err = c.scaleAndWait(ctx, c.spec.Operator.Deployment)
	if err != nil {
		return "", Credential{}, err
	}

	for _, name := range c.spec.Instance.Deployments {
		err = c.scaleAndWait(ctx, name)
		if err != nil {
			return "", Credential{}, err
		}
	}

	notify.Successf(c.writer, "awx is running")

	credential, err := c.Credential(ctx)
	if err != nil {
		return StateRunning, Credential{}, err
	}

	return StateRunning, credential, nil
}

// Cleanup removes the instance, the operator release and the cluster, then
// deletes the generated files. It is allowed from any state; cluster-scoped
// steps are skipped when the cluster is already gone. A failed in-cluster
// teardown is reported as a warning because deleting the cluster removes
// those resources anyway.
func (c *Controller) Cleanup(ctx context.Context) (State, error) {
	exists, err := c.cluster.Exists(ctx, c.spec.Cluster.Name)
	if err != nil {
		return "", fmt.Errorf("failed to check cluster: %w", err)
	}

	if exists {
		notify.Activityf(c.writer, "removing awx from cluster %q", c.spec.Cluster.Name)

		err = c.deployer.Teardown(ctx, c.app())
		if err != nil {
			notify.Warningf(c.writer, "could not remove awx from the cluster: %v", err)
		}

		notify.Activityf(c.writer, "deleting cluster %q", c.spec.Cluster.Name)

		_, err = c.cluster.Delete(ctx, c.spec.Cluster.Name)
		if err != nil {
			return "", err
		}
	} else {
		notify.Infof(c.writer, "cluster %q does not exist", c.spec.Cluster.Name)
	}

	for _, path := range []string{c.cluster.ConfigPath(), c.deployer.ManifestPath()} {
		removed, err := fsutil.RemoveFile(path)
		if err != nil {
			return "", err
		}

		if removed {
			notify.Infof(c.writer, "removed %s", path)
		}
	}

	notify.Successf(c.writer, "cleanup complete")

	return StateRemoved, nil
}

// Credential reads the admin password from the secret the operator generates.
// A secret that does not exist yet is retried within the secret polling
// budget; a failing command or a secret without a password is not.
func (c *Controller) Credential(ctx context.Context) (Credential, error) {
	name := c.spec.Instance.AdminSecretName()

	var password string

	err := readiness.Poll(ctx, backoff(c.spec.Polling.Secret), func(ctx context.Context) (bool, error) {
		secret, err := c.kubectl.GetSecret(ctx, name, c.spec.Operator.Namespace)
		if errors.Is(err, kubectl.ErrNotFound) {
			return false, readiness.Retry(err)
		}

		if err != nil {
			return false, err
		}

		value, ok := secret.Data[passwordKey]
		if !ok {
			return false, fmt.Errorf("%w: %s", ErrMissingPassword, name)
		}

		password = string(value)

		return true, nil
	})
	if errors.Is(err, readiness.ErrAttemptsExhausted) {
		return Credential{}, fmt.Errorf("%w: secret %s: %w", svcerrors.ErrTransientNotFound, name, err)
	}

	if err != nil {
		return Credential{}, fmt.Errorf("failed to read admin credential: %w", err)
	}

	return Credential{Username: c.spec.Instance.AdminUser, Password: password}, nil
}

func (c *Controller) app() deployer.AppConfig {
	return deployer.AppConfig{Operator: c.spec.Operator, Instance: c.spec.Instance}
}

func (c *Controller) requireState(ctx context.Context, want State, operation string) error {
	state, err := c.State(ctx)
	if err != nil {
		return err
	}

	if state != want {
		return fmt.Errorf("%w: cannot %s from state %s", svcerrors.ErrInvalidTransition, operation, state)
	}

	return nil
}

// scaleIfPresent skips workloads the operator has not created.
func (c *Controller) scaleIfPresent(ctx context.Context, name string, replicas int32) error {
	_, err := c.kubectl.GetDeployment(ctx, name, c.spec.Operator.Namespace)
	if errors.Is(err, kubectl.ErrNotFound) {
		return nil
	}

	if err != nil {
		return err
	}

	notify.Activityf(c.writer, "scaling %s to %d", name, replicas)

	return c.kubectl.Scale(ctx, name, c.spec.Operator.Namespace, replicas)
}

// scaleAndWait waits for the operator to (re)create the deployment, scales it
// to one replica and waits for it to become ready, all within the workload
// polling budget.
func (c *Controller) scaleAndWait(ctx context.Context, name string) error {
	scaled := false

	err := readiness.Poll(ctx, backoff(c.spec.Polling.Workload), func(ctx context.Context) (bool, error) {
		deployment, err := c.kubectl.GetDeployment(ctx, name, c.spec.Operator.Namespace)
		if err != nil {
			return false, readiness.Retry(err)
		}

		if scaled {
			return readiness.DeploymentReady(deployment), nil
		}

		notify.Activityf(c.writer, "scaling %s to 1", name)

		err = c.kubectl.Scale(ctx, name, c.spec.Operator.Namespace, 1)
		if err != nil {
			return false, err
		}

		scaled = true

		return false, nil
	})
	if errors.Is(err, readiness.ErrAttemptsExhausted) {
		return fmt.Errorf("%w: %s: %w", svcerrors.ErrWorkloadNotReady, name, err)
	}

	return err
}

func backoff(poll v1alpha1.Poll) readiness.Backoff {
	return readiness.Backoff{Interval: poll.Interval, MaxAttempts: poll.Attempts}
}
