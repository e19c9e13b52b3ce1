package v1alpha1

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// Group is the API group for awxctl configuration.
	Group = "awxctl.devantler.tech"
	// Version is the API version for awxctl configuration.
	Version = "v1alpha1"
	// Kind is the kind for awxctl configuration.
	Kind = "Config"
	// APIVersion is the full API version for awxctl configuration.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Config is the awxctl configuration: which cluster to provision, which
// operator to install and how the AWX instance is exposed.
type Config struct {
	metav1.TypeMeta `json:",inline" mapstructure:",squash"`

	Spec Spec `json:"spec,omitzero" mapstructure:"spec"`
}

// Spec defines the desired provisioning and deployment.
type Spec struct {
	// WorkDir holds the generated kind-config.yaml and awx-instance.yaml.
	WorkDir      string       `json:"workDir,omitzero"      mapstructure:"workDir"`
	Verbose      bool         `json:"verbose,omitzero"      mapstructure:"verbose"`
	Cluster      ClusterSpec  `json:"cluster,omitzero"      mapstructure:"cluster"`
	Operator     OperatorSpec `json:"operator,omitzero"     mapstructure:"operator"`
	Instance     InstanceSpec `json:"instance,omitzero"     mapstructure:"instance"`
	Requirements Requirements `json:"requirements,omitzero" mapstructure:"requirements"`
	Tools        ToolsSpec    `json:"tools,omitzero"        mapstructure:"tools"`
	Polling      PollingSpec  `json:"polling,omitzero"      mapstructure:"polling"`
}

// ClusterSpec is the cluster descriptor. Name is the identity key and must be
// unique among the clusters known to kind.
type ClusterSpec struct {
	Name         string        `json:"name,omitzero"         mapstructure:"name"`
	PortMappings []PortMapping `json:"portMappings,omitzero" mapstructure:"portMappings"`
	// Kubeconfig overrides the kubeconfig location; empty uses the default loading rules.
	Kubeconfig string `json:"kubeconfig,omitzero" mapstructure:"kubeconfig"`
}

// KubeContext is the kubeconfig context kind creates for the cluster.
func (c ClusterSpec) KubeContext() string {
	return "kind-" + c.Name
}

// PortMapping maps a node container port to a host port.
type PortMapping struct {
	ContainerPort int32    `json:"containerPort" mapstructure:"containerPort"`
	HostPort      int32    `json:"hostPort"      mapstructure:"hostPort"`
	Protocol      Protocol `json:"protocol"      mapstructure:"protocol"`
}

// OperatorSpec locates the AWX operator Helm chart and its controller deployment.
type OperatorSpec struct {
	RepoName  string `json:"repoName,omitzero"  mapstructure:"repoName"`
	RepoURL   string `json:"repoURL,omitzero"   mapstructure:"repoURL"`
	Chart     string `json:"chart,omitzero"     mapstructure:"chart"`
	Version   string `json:"version,omitzero"   mapstructure:"version"`
	Release   string `json:"release,omitzero"   mapstructure:"release"`
	Namespace string `json:"namespace,omitzero" mapstructure:"namespace"`
	// Deployment is the operator controller deployment scaled by start and shutdown.
	Deployment string `json:"deployment,omitzero" mapstructure:"deployment"`
}

// ChartRef is the repo-qualified chart reference passed to helm.
func (o OperatorSpec) ChartRef() string {
	return o.RepoName + "/" + o.Chart
}

// InstanceSpec describes the AWX custom resource and the workloads it produces.
type InstanceSpec struct {
	Name        string      `json:"name,omitzero"        mapstructure:"name"`
	ServiceType ServiceType `json:"serviceType,omitzero" mapstructure:"serviceType"`
	NodePort    int32       `json:"nodePort,omitzero"    mapstructure:"nodePort"`
	// Deployments are the application workloads created by the operator.
	Deployments []string `json:"deployments,omitzero" mapstructure:"deployments"`
	AdminUser   string   `json:"adminUser,omitzero"   mapstructure:"adminUser"`
}

// AdminSecretName is the secret the operator generates for the admin password.
func (i InstanceSpec) AdminSecretName() string {
	return i.Name + "-admin-password"
}

// Requirements are the minimum host resources.
type Requirements struct {
	MemoryGB float64 `json:"memoryGB,omitzero" mapstructure:"memoryGB"`
	CPUCores int     `json:"cpuCores,omitzero" mapstructure:"cpuCores"`
	DiskGB   float64 `json:"diskGB,omitzero"   mapstructure:"diskGB"`
}

// ToolsSpec pins the versions used by the install recipes.
type ToolsSpec struct {
	KindVersion       string `json:"kindVersion,omitzero"       mapstructure:"kindVersion"`
	KubernetesChannel string `json:"kubernetesChannel,omitzero" mapstructure:"kubernetesChannel"`
}

// PollingSpec bounds every readiness wait.
type PollingSpec struct {
	Cluster  Poll `json:"cluster,omitzero"  mapstructure:"cluster"`
	Workload Poll `json:"workload,omitzero" mapstructure:"workload"`
	Secret   Poll `json:"secret,omitzero"   mapstructure:"secret"`
}

// Poll is an interval and an attempt budget.
type Poll struct {
	Interval time.Duration `json:"interval,omitzero" mapstructure:"interval"`
	Attempts int           `json:"attempts,omitzero" mapstructure:"attempts"`
}
