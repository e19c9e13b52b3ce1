package installer

import (
	"context"
	"fmt"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	"github.com/devantler-tech/awxctl/pkg/svc/probe"
)

// Outcome describes what EnsureInstalled did.
type Outcome string

const (
	// OutcomeAlreadyInstalled means the tool was present and no command ran.
	OutcomeAlreadyInstalled Outcome = "already-installed"
	// OutcomeInstalled means a recipe ran and the tool is now present.
	OutcomeInstalled Outcome = "installed"
)

// ToolProber reports the state of a tool.
type ToolProber interface {
	ProbeTool(ctx context.Context, spec probe.ToolSpec) probe.ToolState
}

// Installer defines how tools are made available.
type Installer interface {
	EnsureInstalled(ctx context.Context, spec probe.ToolSpec, family probe.OSFamily) (Outcome, error)
}

// ToolInstaller runs recipes from a table through a CommandRunner.
type ToolInstaller struct {
	runner  runner.CommandRunner
	prober  ToolProber
	recipes map[Key]Recipe
	vars    RecipeVars
}

var _ Installer = (*ToolInstaller)(nil)

// NewToolInstaller creates an installer. A nil recipes table uses DefaultRecipes.
func NewToolInstaller(
	commandRunner runner.CommandRunner,
	prober ToolProber,
	recipes map[Key]Recipe,
	vars RecipeVars,
) *ToolInstaller {
	if recipes == nil {
		recipes = DefaultRecipes()
	}

	return &ToolInstaller{
		runner:  commandRunner,
		prober:  prober,
		recipes: recipes,
		vars:    vars,
	}
}

// EnsureInstalled probes the tool and installs it only when missing.
//
// Tools that are not auto-installable fail with ErrPrerequisiteUnmet when not
// ready. A missing recipe fails with ErrUnsupportedPlatform. The first failing
// step aborts with its CommandError, and a tool still missing after its recipe
// fails with ErrPrerequisiteUnmet.
func (i *ToolInstaller) EnsureInstalled(
	ctx context.Context,
	spec probe.ToolSpec,
	family probe.OSFamily,
) (Outcome, error) {
	state := i.prober.ProbeTool(ctx, spec)
	if state.Ready() {
		return OutcomeAlreadyInstalled, nil
	}

	if !spec.AutoInstall || state.Installed {
		return "", unmetPrerequisite(spec.Name, state)
	}

	recipe, ok := i.recipes[Key{Tool: spec.Name, Family: family}]
	if !ok {
		return "", fmt.Errorf("%w: no install recipe for %s on %s",
			svcerrors.ErrUnsupportedPlatform, spec.Name, family)
	}

	commands, err := recipe.Render(i.vars)
	if err != nil {
		return "", fmt.Errorf("install %s: %w", spec.Name, err)
	}

	for index, command := range commands {
		result := i.runner.Run(ctx, command)

		err = runner.Check(result)
		if err != nil {
			return "", fmt.Errorf("install %s: step %q: %w", spec.Name, recipe[index].Name, err)
		}
	}

	if !i.prober.ProbeTool(ctx, spec).Installed {
		return "", fmt.Errorf("%w: %s is still not available after installation",
			svcerrors.ErrPrerequisiteUnmet, spec.Name)
	}

	return OutcomeInstalled, nil
}

func unmetPrerequisite(tool string, state probe.ToolState) error {
	if state.Installed {
		return fmt.Errorf("%w: %s is installed but its daemon is not running",
			svcerrors.ErrPrerequisiteUnmet, tool)
	}

	return fmt.Errorf("%w: %s is required but not installed", svcerrors.ErrPrerequisiteUnmet, tool)
}
