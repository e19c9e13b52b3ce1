package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ExitCodeNotStarted is reported when the process could not be started at all,
// for example because the binary is not on PATH. It mirrors the shell convention.
const ExitCodeNotStarted = 127

// Command is a single external process invocation.
type Command struct {
	// Name is the executable to run.
	Name string
	// Args are passed to the executable verbatim; no shell is involved.
	Args []string
	// Elevated runs the command through the configured Elevator.
	Elevated bool
	// Stdin is optional input written to the process. It is never logged.
	Stdin string
}

// NewCommand builds a non-elevated command.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String renders the command line with arguments that contain whitespace quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)

	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
			parts = append(parts, strconv.Quote(arg))

			continue
		}

		parts = append(parts, arg)
	}

	return strings.Join(parts, " ")
}

// CommandResult captures the outcome of a command execution.
// ExitCode == 0 is the only success signal.
type CommandResult struct {
	Command  string
	Elevated bool
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the command exited with code zero.
func (r CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}

// CommandRunner executes external commands and captures their output.
// Implementations never return an error for a non-zero exit; interpretation is
// left to the caller.
type CommandRunner interface {
	Run(ctx context.Context, command Command) CommandResult
}

// ExecRunner runs commands as local processes.
type ExecRunner struct {
	elevator Elevator
	logger   logrus.FieldLogger
}

// NewExecRunner creates a runner that elevates through elevator and traces
// invocations to logger at debug level. A nil logger discards the trace and a
// nil elevator leaves elevated commands unchanged.
func NewExecRunner(elevator Elevator, logger logrus.FieldLogger) *ExecRunner {
	if elevator == nil {
		elevator = NoElevation{}
	}

	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &ExecRunner{
		elevator: elevator,
		logger:   logger,
	}
}

// Run executes the command and blocks until it exits or ctx is cancelled.
func (r *ExecRunner) Run(ctx context.Context, command Command) CommandResult {
	name, args := command.Name, command.Args
	if command.Elevated {
		name, args = r.elevator.Elevate(name, args)
	}

	fields := logrus.Fields{
		"command":  command.String(),
		"elevated": command.Elevated,
	}
	if command.Stdin != "" {
		fields["stdin_bytes"] = len(command.Stdin)
	}

	entry := r.logger.WithFields(fields)
	entry.Debug("executing command")

	var outBuf, errBuf bytes.Buffer

	//nolint:gosec // G204: commands come from static recipes and configuration
	proc := exec.CommandContext(ctx, name, args...)
	proc.Stdout = &outBuf
	proc.Stderr = &errBuf

	if command.Stdin != "" {
		proc.Stdin = strings.NewReader(command.Stdin)
	}

	exitCode := 0

	runErr := proc.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && exitErr.ExitCode() > 0 {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = ExitCodeNotStarted
			if errBuf.Len() > 0 {
				errBuf.WriteString("\n")
			}

			errBuf.WriteString(runErr.Error())
		}
	}

	result := CommandResult{
		Command:  command.String(),
		Elevated: command.Elevated,
		ExitCode: exitCode,
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
	}

	entry = entry.WithField("exit_code", exitCode)
	if exitCode != 0 {
		entry.WithField("stderr", strings.TrimSpace(result.Stderr)).Debug("command failed")
	} else {
		entry.Debug("command succeeded")
	}

	return result
}
