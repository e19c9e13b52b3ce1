// Package errorhandler runs cobra commands and turns their failures into
// user-facing errors with a hint for the classified error kinds.
package errorhandler

import (
	"bytes"
	"errors"
	"strings"

	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	"github.com/spf13/cobra"
)

// Executor coordinates Cobra execution, capturing stderr output and surfacing aggregated errors.
type Executor struct {
	normalizer DefaultNormalizer
}

// NewExecutor constructs an Executor.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// Execute runs the provided command while intercepting Cobra's error stream.
// It returns nil on success, or a *CommandError carrying the normalized
// message and the original error.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(errBuf.String()),
		cause:   err,
	}
}

// CommandError represents a Cobra execution failure augmented with normalized stderr output.
type CommandError struct {
	message string
	cause   error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Hint suggests what to do about a classified error, or returns "".
func Hint(err error) string {
	switch {
	case errors.Is(err, svcerrors.ErrPrerequisiteUnmet):
		return "fix the prerequisite above and run awxctl again"
	case errors.Is(err, svcerrors.ErrUnsupportedPlatform):
		return "install the tool manually and run awxctl again"
	case errors.Is(err, svcerrors.ErrInvalidTransition):
		return "run awxctl --status to see the current state"
	case errors.Is(err, svcerrors.ErrClusterNotReady), errors.Is(err, svcerrors.ErrWorkloadNotReady):
		return "raise the polling attempts in awxctl.yaml or check the cluster with kubectl"
	default:
		return ""
	}
}

// DefaultNormalizer trims cobra's stderr into a single message.
type DefaultNormalizer struct{}

// Normalize trims whitespace, removes redundant "Error:" prefixes, and preserves multi-line usage hints.
func (DefaultNormalizer) Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
