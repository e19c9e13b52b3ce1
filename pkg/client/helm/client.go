package helm

import (
	"context"
	"fmt"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
)

const binary = "helm"

// Interface is the subset of helm used to manage the operator release.
type Interface interface {
	ListRepositories(ctx context.Context) ([]RepositoryEntry, error)
	AddRepository(ctx context.Context, entry RepositoryEntry) error
	UpdateRepository(ctx context.Context, name string) error
	InstallOrUpgradeChart(ctx context.Context, spec ChartSpec) error
	ListReleases(ctx context.Context, namespace string) ([]ReleaseInfo, error)
	UninstallRelease(ctx context.Context, releaseName, namespace string) error
}

// Client runs the helm binary through a CommandRunner against one kube context.
type Client struct {
	runner      runner.CommandRunner
	kubeContext string
	kubeconfig  string
}

var _ Interface = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithKubeconfig passes --kubeconfig on every cluster call.
func WithKubeconfig(path string) Option {
	return func(c *Client) {
		c.kubeconfig = path
	}
}

// NewClient creates a helm client. An empty kubeContext uses the current context.
func NewClient(commandRunner runner.CommandRunner, kubeContext string, opts ...Option) *Client {
	client := &Client{runner: commandRunner, kubeContext: kubeContext}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ListRepositories lists locally registered chart repositories.
func (c *Client) ListRepositories(ctx context.Context) ([]RepositoryEntry, error) {
	result := c.runner.Run(ctx, runner.NewCommand(binary, "repo", "list", "-o", "json"))

	entries, err := ParseRepositories(result)
	if err != nil {
		return nil, fmt.Errorf("list helm repositories: %w", err)
	}

	return entries, nil
}

// AddRepository registers a chart repository.
func (c *Client) AddRepository(ctx context.Context, entry RepositoryEntry) error {
	result := c.runner.Run(ctx, runner.NewCommand(binary, "repo", "add", entry.Name, entry.URL))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("add helm repository %q: %w", entry.Name, err)
	}

	return nil
}

// UpdateRepository refreshes the index of one repository.
func (c *Client) UpdateRepository(ctx context.Context, name string) error {
	result := c.runner.Run(ctx, runner.NewCommand(binary, "repo", "update", name))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("update helm repository %q: %w", name, err)
	}

	return nil
}

// InstallOrUpgradeChart runs `helm upgrade --install`, which upgrades an
// existing release in place instead of failing.
func (c *Client) InstallOrUpgradeChart(ctx context.Context, spec ChartSpec) error {
	args := []string{"upgrade", "--install", spec.ReleaseName, spec.ChartName, "--namespace", spec.Namespace}
	if spec.CreateNamespace {
		args = append(args, "--create-namespace")
	}

	if spec.Version != "" {
		args = append(args, "--version", spec.Version)
	}

	result := c.runner.Run(ctx, runner.NewCommand(binary, c.withKubeContext(args)...))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("install chart %q: %w", spec.ChartName, err)
	}

	return nil
}

// ListReleases lists releases in a namespace.
func (c *Client) ListReleases(ctx context.Context, namespace string) ([]ReleaseInfo, error) {
	result := c.runner.Run(ctx, runner.NewCommand(
		binary, c.withKubeContext([]string{"list", "--all", "--namespace", namespace, "-o", "json"})...,
	))

	err := runner.Check(result)
	if err != nil {
		return nil, fmt.Errorf("list helm releases: %w", err)
	}

	return ParseReleases(result.Stdout)
}

// UninstallRelease removes a release.
func (c *Client) UninstallRelease(ctx context.Context, releaseName, namespace string) error {
	result := c.runner.Run(ctx, runner.NewCommand(
		binary, c.withKubeContext([]string{"uninstall", releaseName, "--namespace", namespace})...,
	))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("uninstall release %q: %w", releaseName, err)
	}

	return nil
}

func (c *Client) withKubeContext(args []string) []string {
	if c.kubeContext != "" {
		args = append(args, "--kube-context", c.kubeContext)
	}

	if c.kubeconfig != "" {
		args = append(args, "--kubeconfig", c.kubeconfig)
	}

	return args
}
