package kubectl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

const binary = "kubectl"

// Interface is the subset of kubectl used for cluster readiness and workloads.
type Interface interface {
	ClusterInfo(ctx context.Context) error
	GetNodes(ctx context.Context) (*corev1.NodeList, error)
	Apply(ctx context.Context, file string) error
	DeleteFile(ctx context.Context, file string) error
	Delete(ctx context.Context, kind, name, namespace string) error
	Exists(ctx context.Context, kind, name, namespace string) (bool, error)
	GetDeployment(ctx context.Context, name, namespace string) (*appsv1.Deployment, error)
	Scale(ctx context.Context, deployment, namespace string, replicas int32) error
	GetSecret(ctx context.Context, name, namespace string) (*corev1.Secret, error)
}

// Client runs the kubectl binary through a CommandRunner against one context.
type Client struct {
	runner      runner.CommandRunner
	kubeContext string
	kubeconfig  string
}

var _ Interface = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithKubeconfig passes --kubeconfig on every call. An empty path keeps
// kubectl's default loading rules.
func WithKubeconfig(path string) Option {
	return func(c *Client) {
		c.kubeconfig = path
	}
}

// NewClient creates a kubectl client. An empty kubeContext uses the current context.
func NewClient(commandRunner runner.CommandRunner, kubeContext string, opts ...Option) *Client {
	client := &Client{runner: commandRunner, kubeContext: kubeContext}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// ClusterInfo succeeds once the API server answers `kubectl cluster-info`.
func (c *Client) ClusterInfo(ctx context.Context) error {
	_, err := c.run(ctx, "cluster-info")
	if err != nil {
		return fmt.Errorf("cluster info: %w", err)
	}

	return nil
}

// GetNodes lists the cluster nodes.
func (c *Client) GetNodes(ctx context.Context) (*corev1.NodeList, error) {
	stdout, err := c.run(ctx, "get", "nodes", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("get nodes: %w", err)
	}

	nodes := &corev1.NodeList{}

	err = decodeObject(stdout, nodes)
	if err != nil {
		return nil, fmt.Errorf("get nodes: %w", err)
	}

	return nodes, nil
}

// Apply applies a manifest file declaratively.
func (c *Client) Apply(ctx context.Context, file string) error {
	_, err := c.run(ctx, "apply", "-f", file)
	if err != nil {
		return fmt.Errorf("apply %s: %w", file, err)
	}

	return nil
}

// DeleteFile deletes the resources of a manifest file; absent resources are ignored.
func (c *Client) DeleteFile(ctx context.Context, file string) error {
	_, err := c.run(ctx, "delete", "-f", file, "--ignore-not-found")
	if err != nil {
		return fmt.Errorf("delete %s: %w", file, err)
	}

	return nil
}

// Delete deletes one resource; an absent resource is ignored.
func (c *Client) Delete(ctx context.Context, kind, name, namespace string) error {
	_, err := c.run(ctx, withNamespace([]string{"delete", kind, name, "--ignore-not-found"}, namespace)...)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, name, err)
	}

	return nil
}

// Exists reports whether a resource exists. The resource type itself must be
// known to the API server.
func (c *Client) Exists(ctx context.Context, kind, name, namespace string) (bool, error) {
	stdout, err := c.run(ctx, withNamespace(
		[]string{"get", kind, name, "--ignore-not-found", "-o", "name"}, namespace,
	)...)
	if err != nil {
		return false, fmt.Errorf("get %s/%s: %w", kind, name, err)
	}

	return ParseNames(stdout) != nil, nil
}

// GetDeployment returns the deployment, or ErrNotFound when it does not exist.
func (c *Client) GetDeployment(ctx context.Context, name, namespace string) (*appsv1.Deployment, error) {
	stdout, err := c.run(ctx, withNamespace(
		[]string{"get", "deployment", name, "--ignore-not-found", "-o", "json"}, namespace,
	)...)
	if err != nil {
		return nil, fmt.Errorf("get deployment %s: %w", name, err)
	}

	if strings.TrimSpace(stdout) == "" {
		return nil, fmt.Errorf("deployment %s: %w", name, ErrNotFound)
	}

	deployment := &appsv1.Deployment{}

	err = decodeObject(stdout, deployment)
	if err != nil {
		return nil, fmt.Errorf("get deployment %s: %w", name, err)
	}

	return deployment, nil
}

// Scale sets the replica count of a deployment.
func (c *Client) Scale(ctx context.Context, deployment, namespace string, replicas int32) error {
	_, err := c.run(ctx, withNamespace([]string{
		"scale", "deployment", deployment, "--replicas=" + strconv.Itoa(int(replicas)),
	}, namespace)...)
	if err != nil {
		return fmt.Errorf("scale deployment %s to %d: %w", deployment, replicas, err)
	}

	return nil
}

// GetSecret returns the secret, or ErrNotFound when it does not exist yet.
func (c *Client) GetSecret(ctx context.Context, name, namespace string) (*corev1.Secret, error) {
	stdout, err := c.run(ctx, withNamespace(
		[]string{"get", "secret", name, "--ignore-not-found", "-o", "json"}, namespace,
	)...)
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", name, err)
	}

	if strings.TrimSpace(stdout) == "" {
		return nil, fmt.Errorf("secret %s: %w", name, ErrNotFound)
	}

	secret := &corev1.Secret{}

	err = decodeObject(stdout, secret)
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", name, err)
	}

	return secret, nil
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if c.kubeContext != "" {
		args = append(args, "--context", c.kubeContext)
	}

	if c.kubeconfig != "" {
		args = append(args, "--kubeconfig", c.kubeconfig)
	}

	result := c.runner.Run(ctx, runner.NewCommand(binary, args...))

	err := runner.Check(result)
	if err != nil {
		return "", err
	}

	return result.Stdout, nil
}

func withNamespace(args []string, namespace string) []string {
	if namespace == "" {
		return args
	}

	return append(args, "--namespace", namespace)
}
