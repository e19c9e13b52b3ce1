package runner

import (
	"fmt"
	"strings"

	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
)

// CommandError reports a non-zero command exit with the captured stderr.
type CommandError struct {
	Result CommandResult
}

// Error includes the command line, exit code and stderr verbatim.
func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Result.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%q exited with code %d", e.Result.Command, e.Result.ExitCode)
	}

	return fmt.Sprintf("%q exited with code %d: %s", e.Result.Command, e.Result.ExitCode, stderr)
}

// Is makes every CommandError match svcerrors.ErrCommandFailure.
func (e *CommandError) Is(target error) bool {
	return target == svcerrors.ErrCommandFailure
}

// Check returns a *CommandError when result did not succeed.
func Check(result CommandResult) error {
	if result.Succeeded() {
		return nil
	}

	return &CommandError{Result: result}
}
