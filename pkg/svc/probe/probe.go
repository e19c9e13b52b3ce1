package probe

import (
	"context"
	"os"
	"runtime"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
)

// Probe detects the host platform and external tools.
type Probe struct {
	runner        runner.CommandRunner
	goos          string
	osReleasePath string
	diskPath      string
	hostStats     func(diskPath string) HostStats
	cpuCount      func() int
	readFile      func(path string) ([]byte, error)
}

// Option customises a Probe.
type Option func(*Probe)

// WithGOOS overrides the detected operating system.
func WithGOOS(goos string) Option {
	return func(p *Probe) { p.goos = goos }
}

// WithOSReleasePath overrides the os-release location.
func WithOSReleasePath(path string) Option {
	return func(p *Probe) { p.osReleasePath = path }
}

// WithDiskPath sets the filesystem whose free space is checked.
func WithDiskPath(path string) Option {
	return func(p *Probe) { p.diskPath = path }
}

// WithHostStats replaces the memory and disk reader.
func WithHostStats(read func(diskPath string) HostStats) Option {
	return func(p *Probe) { p.hostStats = read }
}

// WithCPUCount replaces the CPU counter.
func WithCPUCount(count func() int) Option {
	return func(p *Probe) { p.cpuCount = count }
}

// NewProbe creates a Probe running tool checks through commandRunner.
func NewProbe(commandRunner runner.CommandRunner, opts ...Option) *Probe {
	probe := &Probe{
		runner:        commandRunner,
		goos:          runtime.GOOS,
		osReleasePath: DefaultOSReleasePath,
		diskPath:      "/",
		hostStats:     ReadHostStats,
		cpuCount:      runtime.NumCPU,
		readFile:      os.ReadFile,
	}

	for _, opt := range opts {
		opt(probe)
	}

	return probe
}

// DetectOSFamily classifies the host. Unreadable os-release on linux yields unknown.
func (p *Probe) DetectOSFamily() OSFamily {
	var osRelease []byte

	if p.goos == "linux" {
		content, err := p.readFile(p.osReleasePath)
		if err != nil {
			return FamilyUnknown
		}

		osRelease = content
	}

	return FamilyForGOOS(p.goos, osRelease)
}

// CheckResources reads the host profile. It issues no commands.
func (p *Probe) CheckResources() SystemProfile {
	stats := p.hostStats(p.diskPath)

	cpu := Unknown()
	if count := p.cpuCount(); count > 0 {
		cpu = Known(float64(count))
	}

	return SystemProfile{
		OSFamily:      p.DetectOSFamily(),
		TotalMemoryGB: toGB(stats.MemoryBytes, stats.MemoryKnown),
		CPUCores:      cpu,
		FreeDiskGB:    toGB(stats.FreeDiskBytes, stats.DiskKnown),
	}
}

// ProbeTool runs the version command and, for daemon tools, the health command.
// A failing health check leaves Installed untouched.
func (p *Probe) ProbeTool(ctx context.Context, spec ToolSpec) ToolState {
	result := p.runner.Run(ctx, runner.NewCommand(spec.Name, spec.VersionArgs...))
	if !result.Succeeded() {
		return ToolState{}
	}

	state := ToolState{Installed: true}

	if spec.ParseVersion != nil {
		state.Version = NormalizeVersion(spec.ParseVersion(result.Stdout))
	}

	if spec.HasDaemon() {
		health := p.runner.Run(ctx, runner.NewCommand(spec.Name, spec.HealthArgs...))
		ready := health.Succeeded()
		state.DaemonReady = &ready
	}

	return state
}

// ProbeAll probes every tool in order.
func (p *Probe) ProbeAll(ctx context.Context, specs []ToolSpec) ToolStatus {
	status := make(ToolStatus, len(specs))

	for _, spec := range specs {
		status[spec.Name] = p.ProbeTool(ctx, spec)
	}

	return status
}
