package probe

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	kindclient "github.com/devantler-tech/awxctl/pkg/client/kind"
	kubectlclient "github.com/devantler-tech/awxctl/pkg/client/kubectl"
)

// Tool names.
const (
	ToolDocker  = "docker"
	ToolKubectl = "kubectl"
	ToolHelm    = "helm"
	ToolKind    = "kind"
)

// ToolSpec describes how to detect one external tool.
type ToolSpec struct {
	Name string
	// VersionArgs is the version subcommand; exit 0 means installed.
	VersionArgs []string
	// ParseVersion extracts the version token from the version command stdout.
	ParseVersion func(stdout string) string
	// HealthArgs is a distinct daemon health command. Empty for daemonless tools.
	HealthArgs []string
	// AutoInstall marks tools the installer may install. Others are fatal
	// prerequisites that are only checked.
	AutoInstall bool
	// Required aborts the run when the tool cannot be made available.
	Required bool
}

// HasDaemon reports whether the tool runs a service with a health check.
func (s ToolSpec) HasDaemon() bool {
	return len(s.HealthArgs) > 0
}

// ToolState is the observed state of one tool.
type ToolState struct {
	Installed bool
	// DaemonReady is nil for tools without a daemon.
	DaemonReady *bool
	Version     string
}

// Ready reports whether the tool is installed and, if it has a daemon, the daemon answers.
func (s ToolState) Ready() bool {
	return s.Installed && (s.DaemonReady == nil || *s.DaemonReady)
}

// ToolStatus maps tool names to their state.
type ToolStatus map[string]ToolState

// DockerSpec is the container engine: checked, never installed.
func DockerSpec() ToolSpec {
	return ToolSpec{
		Name:         ToolDocker,
		VersionArgs:  []string{"--version"},
		ParseVersion: ParseDockerVersion,
		HealthArgs:   []string{"info"},
		Required:     true,
	}
}

// KubectlSpec is the cluster CLI.
func KubectlSpec() ToolSpec {
	return ToolSpec{
		Name:        ToolKubectl,
		VersionArgs: []string{"version", "--client", "-o", "json"},
		ParseVersion: func(stdout string) string {
			version, err := kubectlclient.ParseClientVersion(stdout)
			if err != nil {
				return ""
			}

			return version
		},
		AutoInstall: true,
		Required:    true,
	}
}

// HelmSpec is the operator package manager.
func HelmSpec() ToolSpec {
	return ToolSpec{
		Name:         ToolHelm,
		VersionArgs:  []string{"version", "--short"},
		ParseVersion: ParseHelmVersion,
		AutoInstall:  true,
		Required:     true,
	}
}

// KindSpec is the local cluster tool.
func KindSpec() ToolSpec {
	return ToolSpec{
		Name:         ToolKind,
		VersionArgs:  []string{"version"},
		ParseVersion: kindclient.ParseVersion,
		AutoInstall:  true,
		Required:     true,
	}
}

// DefaultTools lists every tool in probe order.
func DefaultTools() []ToolSpec {
	return []ToolSpec{DockerSpec(), KubectlSpec(), HelmSpec(), KindSpec()}
}

// ParseDockerVersion extracts "24.0.7" from "Docker version 24.0.7, build afdd53b".
func ParseDockerVersion(stdout string) string {
	fields := strings.Fields(stdout)
	if len(fields) < 3 || fields[0] != "Docker" || fields[1] != "version" {
		return ""
	}

	return strings.TrimSuffix(fields[2], ",")
}

// ParseHelmVersion extracts "v3.14.4+g81c902a" from `helm version --short`.
func ParseHelmVersion(stdout string) string {
	fields := strings.Fields(stdout)
	if len(fields) != 1 || !strings.HasPrefix(fields[0], "v") {
		return ""
	}

	return fields[0]
}

// NormalizeVersion returns the canonical semantic version without a leading
// "v" or build metadata, or the trimmed input when it is not a version.
func NormalizeVersion(raw string) string {
	version, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	normalized, err := version.SetMetadata("")
	if err != nil {
		return version.String()
	}

	return normalized.String()
}

// OlderThan reports whether version is a valid semantic version below minimum.
// Unparseable input is never reported as older.
func OlderThan(version, minimum string) bool {
	current, err := semver.NewVersion(version)
	if err != nil {
		return false
	}

	floor, err := semver.NewVersion(minimum)
	if err != nil {
		return false
	}

	return current.LessThan(floor)
}
