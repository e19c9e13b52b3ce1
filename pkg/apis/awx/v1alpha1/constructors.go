package v1alpha1

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Defaults taken from the reference AWX-on-kind setup.
const (
	DefaultClusterName       = "awx-cluster"
	DefaultNodePort    int32 = 30080
	DefaultNamespace         = "awx"
	DefaultRepoName          = "awx-operator"
	DefaultRepoURL           = "https://ansible-community.github.io/awx-operator-helm/"
	DefaultChart             = "awx-operator"
	DefaultRelease           = "awx-operator"
	DefaultOperatorDeploy    = "awx-operator-controller-manager"
	DefaultInstanceName      = "awx"
	DefaultAdminUser         = "admin"
	DefaultKindVersion       = "v0.20.0"
	DefaultKubeChannel       = "v1.32"

	DefaultMemoryGB = 4
	DefaultCPUCores = 2
	DefaultDiskGB   = 20
)

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}
}

// NewSpec creates a Spec with default values.
func NewSpec() Spec {
	return Spec{
		WorkDir:      ".",
		Cluster:      NewClusterSpec(),
		Operator:     NewOperatorSpec(),
		Instance:     NewInstanceSpec(),
		Requirements: NewRequirements(),
		Tools:        NewToolsSpec(),
		Polling:      NewPollingSpec(),
	}
}

// NewClusterSpec creates the default cluster descriptor: one cluster mapping
// the AWX node port to the same host port.
func NewClusterSpec() ClusterSpec {
	return ClusterSpec{
		Name: DefaultClusterName,
		PortMappings: []PortMapping{
			{ContainerPort: DefaultNodePort, HostPort: DefaultNodePort, Protocol: ProtocolTCP},
		},
	}
}

// NewOperatorSpec creates the default AWX operator chart location.
func NewOperatorSpec() OperatorSpec {
	return OperatorSpec{
		RepoName:   DefaultRepoName,
		RepoURL:    DefaultRepoURL,
		Chart:      DefaultChart,
		Release:    DefaultRelease,
		Namespace:  DefaultNamespace,
		Deployment: DefaultOperatorDeploy,
	}
}

// NewInstanceSpec creates the default AWX instance exposed on a node port.
func NewInstanceSpec() InstanceSpec {
	return InstanceSpec{
		Name:        DefaultInstanceName,
		ServiceType: ServiceTypeNodePort,
		NodePort:    DefaultNodePort,
		Deployments: []string{DefaultInstanceName + "-web", DefaultInstanceName + "-task"},
		AdminUser:   DefaultAdminUser,
	}
}

// NewRequirements creates the default host resource thresholds.
func NewRequirements() Requirements {
	return Requirements{
		MemoryGB: DefaultMemoryGB,
		CPUCores: DefaultCPUCores,
		DiskGB:   DefaultDiskGB,
	}
}

// NewToolsSpec creates the default tool versions.
func NewToolsSpec() ToolsSpec {
	return ToolsSpec{
		KindVersion:       DefaultKindVersion,
		KubernetesChannel: DefaultKubeChannel,
	}
}

// NewPollingSpec creates the default polling bounds.
func NewPollingSpec() PollingSpec {
	return PollingSpec{
		Cluster:  Poll{Interval: 5 * time.Second, Attempts: 24},
		Workload: Poll{Interval: 10 * time.Second, Attempts: 60},
		Secret:   Poll{Interval: 10 * time.Second, Attempts: 60},
	}
}
