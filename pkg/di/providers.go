package di

import (
	"fmt"
	"io"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/client/helm"
	kindclient "github.com/devantler-tech/awxctl/pkg/client/kind"
	"github.com/devantler-tech/awxctl/pkg/client/kubectl"
	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
	"github.com/devantler-tech/awxctl/pkg/k8s/readiness"
	"github.com/devantler-tech/awxctl/pkg/svc/deployer"
	"github.com/devantler-tech/awxctl/pkg/svc/installer"
	"github.com/devantler-tech/awxctl/pkg/svc/lifecycle"
	"github.com/devantler-tech/awxctl/pkg/svc/probe"
	clusterprovisioner "github.com/devantler-tech/awxctl/pkg/svc/provisioner/cluster"
	kindprovisioner "github.com/devantler-tech/awxctl/pkg/svc/provisioner/cluster/kind"
	"github.com/devantler-tech/awxctl/pkg/svc/setup"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency providers.

// NewRuntime constructs the runtime used by the root command. The services
// depend on the values registered by Inputs, which callers pass per invocation.
func NewRuntime() *Runtime {
	return NewRuntimeWith(provideCommandRunner)
}

// NewRuntimeWith constructs the runtime with runnerModule providing the
// runner.CommandRunner every service executes through.
func NewRuntimeWith(runnerModule Module) *Runtime {
	return New(
		runnerModule,
		provideProbe,
		provideInstaller,
		provideClusterProvisioner,
		provideDeployer,
		provideController,
		providePipeline,
	)
}

// Inputs registers the loaded configuration, the progress writer and the
// command trace logger.
func Inputs(cfg *v1alpha1.Config, out io.Writer, logger logrus.FieldLogger) Module {
	return func(i Injector) error {
		do.ProvideValue(i, cfg)
		do.ProvideValue(i, out)
		do.ProvideValue(i, logger)

		return nil
	}
}

// CommandRunnerModule provides a fixed command runner.
func CommandRunnerModule(commandRunner runner.CommandRunner) Module {
	return func(i Injector) error {
		do.ProvideValue(i, commandRunner)

		return nil
	}
}

func provideCommandRunner(i Injector) error {
	do.Provide(i, func(i Injector) (runner.CommandRunner, error) {
		logger, err := do.Invoke[logrus.FieldLogger](i)
		if err != nil {
			return nil, fmt.Errorf("resolve logger dependency: %w", err)
		}

		return runner.NewExecRunner(runner.DetectSudoElevator(), logger), nil
	})

	return nil
}

func provideProbe(i Injector) error {
	do.Provide(i, func(i Injector) (*probe.Probe, error) {
		commandRunner, err := do.Invoke[runner.CommandRunner](i)
		if err != nil {
			return nil, fmt.Errorf("resolve command runner dependency: %w", err)
		}

		return probe.NewProbe(commandRunner), nil
	})

	return nil
}

func provideInstaller(i Injector) error {
	do.Provide(i, func(i Injector) (installer.Installer, error) {
		deps, err := resolveBase(i)
		if err != nil {
			return nil, err
		}

		hostProbe, err := do.Invoke[*probe.Probe](i)
		if err != nil {
			return nil, fmt.Errorf("resolve probe dependency: %w", err)
		}

		tools := deps.config.Spec.Tools

		return installer.NewToolInstaller(deps.runner, hostProbe, nil,
			installer.DefaultRecipeVars(tools.KindVersion, tools.KubernetesChannel)), nil
	})

	return nil
}

func provideClusterProvisioner(i Injector) error {
	do.Provide(i, func(i Injector) (clusterprovisioner.ClusterProvisioner, error) {
		deps, err := resolveBase(i)
		if err != nil {
			return nil, err
		}

		spec := deps.config.Spec
		poll := spec.Polling.Cluster

		return kindprovisioner.NewKindClusterProvisioner(
			kindclient.NewClient(deps.runner),
			newKubectlClient(deps.runner, spec.Cluster),
			spec.WorkDir,
			readiness.Backoff{Interval: poll.Interval, MaxAttempts: poll.Attempts},
		), nil
	})

	return nil
}

func provideDeployer(i Injector) error {
	do.Provide(i, func(i Injector) (lifecycle.AppDeployer, error) {
		deps, err := resolveBase(i)
		if err != nil {
			return nil, err
		}

		cluster := deps.config.Spec.Cluster

		return deployer.NewDeployer(
			helm.NewClient(deps.runner, cluster.KubeContext(), helm.WithKubeconfig(cluster.Kubeconfig)),
			newKubectlClient(deps.runner, cluster),
			deps.config.Spec.WorkDir,
		), nil
	})

	return nil
}

func provideController(i Injector) error {
	do.Provide(i, func(i Injector) (*lifecycle.Controller, error) {
		deps, err := resolveBase(i)
		if err != nil {
			return nil, err
		}

		cluster, err := do.Invoke[clusterprovisioner.ClusterProvisioner](i)
		if err != nil {
			return nil, fmt.Errorf("resolve cluster provisioner dependency: %w", err)
		}

		appDeployer, err := do.Invoke[lifecycle.AppDeployer](i)
		if err != nil {
			return nil, fmt.Errorf("resolve deployer dependency: %w", err)
		}

		spec := deps.config.Spec

		return lifecycle.NewController(
			cluster,
			appDeployer,
			newKubectlClient(deps.runner, spec.Cluster),
			spec,
			deps.writer,
		), nil
	})

	return nil
}

func newKubectlClient(commandRunner runner.CommandRunner, cluster v1alpha1.ClusterSpec) *kubectl.Client {
	return kubectl.NewClient(commandRunner, cluster.KubeContext(), kubectl.WithKubeconfig(cluster.Kubeconfig))
}

func providePipeline(i Injector) error {
	do.Provide(i, func(i Injector) (*setup.Pipeline, error) {
		deps, err := resolveBase(i)
		if err != nil {
			return nil, err
		}

		hostProbe, err := do.Invoke[*probe.Probe](i)
		if err != nil {
			return nil, fmt.Errorf("resolve probe dependency: %w", err)
		}

		toolInstaller, err := do.Invoke[installer.Installer](i)
		if err != nil {
			return nil, fmt.Errorf("resolve installer dependency: %w", err)
		}

		controller, err := ResolveController(i)
		if err != nil {
			return nil, err
		}

		return setup.NewPipeline(hostProbe, toolInstaller, controller, probe.DefaultTools(),
			deps.config.Spec, deps.writer), nil
	})

	return nil
}

type base struct {
	config *v1alpha1.Config
	writer io.Writer
	runner runner.CommandRunner
}

func resolveBase(i Injector) (base, error) {
	cfg, err := do.Invoke[*v1alpha1.Config](i)
	if err != nil {
		return base{}, fmt.Errorf("resolve config dependency: %w", err)
	}

	writer, err := do.Invoke[io.Writer](i)
	if err != nil {
		return base{}, fmt.Errorf("resolve writer dependency: %w", err)
	}

	commandRunner, err := do.Invoke[runner.CommandRunner](i)
	if err != nil {
		return base{}, fmt.Errorf("resolve command runner dependency: %w", err)
	}

	return base{config: cfg, writer: writer, runner: commandRunner}, nil
}
