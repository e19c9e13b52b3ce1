package di

import (
	"fmt"

	"github.com/devantler-tech/awxctl/pkg/svc/lifecycle"
	"github.com/devantler-tech/awxctl/pkg/svc/setup"
	"github.com/samber/do/v2"
)

// Dependency resolvers.

// ResolveController retrieves the lifecycle controller with consistent error handling.
func ResolveController(injector Injector) (*lifecycle.Controller, error) {
	controller, err := do.Invoke[*lifecycle.Controller](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve lifecycle controller dependency: %w", err)
	}

	return controller, nil
}

// ResolvePipeline retrieves the setup pipeline with consistent error handling.
func ResolvePipeline(injector Injector) (*setup.Pipeline, error) {
	pipeline, err := do.Invoke[*setup.Pipeline](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve setup pipeline dependency: %w", err)
	}

	return pipeline, nil
}
