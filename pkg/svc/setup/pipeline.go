package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	"github.com/devantler-tech/awxctl/pkg/svc/installer"
	"github.com/devantler-tech/awxctl/pkg/svc/lifecycle"
	"github.com/devantler-tech/awxctl/pkg/svc/probe"
	"github.com/devantler-tech/awxctl/pkg/utils/notify"
)

// HostProber reports the host platform, its resources and tool state.
type HostProber interface {
	DetectOSFamily() probe.OSFamily
	CheckResources() probe.SystemProfile
	ProbeTool(ctx context.Context, spec probe.ToolSpec) probe.ToolState
}

// Deployment deploys AWX and reads its admin credential.
type Deployment interface {
	Deploy(ctx context.Context) (lifecycle.State, error)
	Credential(ctx context.Context) (lifecycle.Credential, error)
}

// Report is the outcome of a successful run.
type Report struct {
	State    lifecycle.State
	URL      string
	Username string
	Password string
}

// Pipeline gates on the host, installs tools and deploys AWX.
type Pipeline struct {
	prober     HostProber
	installer  installer.Installer
	deployment Deployment
	tools      []probe.ToolSpec
	spec       v1alpha1.Spec
	writer     io.Writer
}

// NewPipeline creates a pipeline for the given tools, checked in order.
func NewPipeline(
	prober HostProber,
	toolInstaller installer.Installer,
	deployment Deployment,
	tools []probe.ToolSpec,
	spec v1alpha1.Spec,
	writer io.Writer,
) *Pipeline {
	return &Pipeline{
		prober:     prober,
		installer:  toolInstaller,
		deployment: deployment,
		tools:      tools,
		spec:       spec,
		writer:     writer,
	}
}

// Run executes the pipeline. A resource shortfall fails before any command
// runs. A credential failure after a successful deploy is only a warning.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	family := p.prober.DetectOSFamily()

	err := p.checkResources()
	if err != nil {
		return Report{}, err
	}

	err = p.ensureTools(ctx, family)
	if err != nil {
		return Report{}, err
	}

	state, err := p.deployment.Deploy(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{State: state, URL: p.url()}

	credential, err := p.deployment.Credential(ctx)
	if err != nil {
		notify.Warningf(p.writer, "could not read the admin password: %v", err)

		return report, nil
	}

	report.Username = credential.Username
	report.Password = credential.Password

	return report, nil
}

func (p *Pipeline) checkResources() error {
	profile := p.prober.CheckResources()

	failing := probe.MeetsThresholds(profile, p.spec.Requirements)
	if failing.Len() > 0 {
		return fmt.Errorf("%w: %s", svcerrors.ErrPrerequisiteUnmet,
			strings.Join(probe.DescribeShortfall(profile, p.spec.Requirements, failing), "; "))
	}

	notify.Successf(p.writer, "host meets requirements (%s, memory %sGB, cpu %s, disk %sGB)",
		profile.OSFamily, profile.TotalMemoryGB, profile.CPUCores, profile.FreeDiskGB)

	return nil
}

func (p *Pipeline) ensureTools(ctx context.Context, family probe.OSFamily) error {
	for _, tool := range p.tools {
		outcome, err := p.installer.EnsureInstalled(ctx, tool, family)
		if err != nil {
			if errors.Is(err, svcerrors.ErrUnsupportedPlatform) && !tool.Required {
				notify.Warningf(p.writer, "skipping %s: %v", tool.Name, err)

				continue
			}

			return err
		}

		switch outcome {
		case installer.OutcomeInstalled:
			notify.Successf(p.writer, "%s installed", tool.Name)
		case installer.OutcomeAlreadyInstalled:
			notify.Infof(p.writer, "%s is already installed", tool.Name)
		}

		if tool.Name == probe.ToolKind {
			p.warnOutdatedKind(ctx, tool)
		}
	}

	return nil
}

func (p *Pipeline) warnOutdatedKind(ctx context.Context, tool probe.ToolSpec) {
	state := p.prober.ProbeTool(ctx, tool)
	if state.Version != "" && probe.OlderThan(state.Version, p.spec.Tools.KindVersion) {
		notify.Warningf(p.writer, "kind %s is older than %s", state.Version, p.spec.Tools.KindVersion)
	}
}

// url is the address AWX is reachable on through the cluster's port mapping.
func (p *Pipeline) url() string {
	port := p.spec.Instance.NodePort

	for _, mapping := range p.spec.Cluster.PortMappings {
		if mapping.ContainerPort == p.spec.Instance.NodePort {
			port = mapping.HostPort

			break
		}
	}

	return fmt.Sprintf("http://localhost:%d", port)
}
