package kind

import (
	"context"
	"fmt"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
)

const binary = "kind"

// Interface is the subset of kind used to manage clusters.
type Interface interface {
	GetClusters(ctx context.Context) ([]string, error)
	CreateCluster(ctx context.Context, name, configPath, kubeconfig string) error
	DeleteCluster(ctx context.Context, name string) error
	ExportKubeconfig(ctx context.Context, name, kubeconfig string) error
}

// Client runs the kind binary through a CommandRunner.
type Client struct {
	runner runner.CommandRunner
}

var _ Interface = (*Client)(nil)

// NewClient creates a kind client.
func NewClient(commandRunner runner.CommandRunner) *Client {
	return &Client{runner: commandRunner}
}

// GetClusters lists the clusters kind knows about.
func (c *Client) GetClusters(ctx context.Context) ([]string, error) {
	result := c.runner.Run(ctx, runner.NewCommand(binary, "get", "clusters"))

	err := runner.Check(result)
	if err != nil {
		return nil, fmt.Errorf("list kind clusters: %w", err)
	}

	return ParseClusters(result.Stdout), nil
}

// CreateCluster creates a cluster from a config file. An empty kubeconfig
// uses kind's default location.
func (c *Client) CreateCluster(ctx context.Context, name, configPath, kubeconfig string) error {
	args := []string{"create", "cluster", "--name", name, "--config", configPath}
	if kubeconfig != "" {
		args = append(args, "--kubeconfig", kubeconfig)
	}

	result := c.runner.Run(ctx, runner.NewCommand(binary, args...))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("create kind cluster %q: %w", name, err)
	}

	return nil
}

// DeleteCluster deletes a cluster. kind treats a missing cluster as deleted.
func (c *Client) DeleteCluster(ctx context.Context, name string) error {
	result := c.runner.Run(ctx, runner.NewCommand(binary, "delete", "cluster", "--name", name))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("delete kind cluster %q: %w", name, err)
	}

	return nil
}

// ExportKubeconfig writes the cluster's kubeconfig entry. An empty kubeconfig
// uses kind's default location.
func (c *Client) ExportKubeconfig(ctx context.Context, name, kubeconfig string) error {
	args := []string{"export", "kubeconfig", "--name", name}
	if kubeconfig != "" {
		args = append(args, "--kubeconfig", kubeconfig)
	}

	result := c.runner.Run(ctx, runner.NewCommand(binary, args...))

	err := runner.Check(result)
	if err != nil {
		return fmt.Errorf("export kubeconfig for %q: %w", name, err)
	}

	return nil
}
