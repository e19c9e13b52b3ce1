// Package runnertest provides a scripted CommandRunner for tests.
package runnertest

import (
	"context"
	"strings"

	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
)

// Response is the scripted outcome of one command.
type Response struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// OK is a successful response with the given stdout.
func OK(stdout string) Response {
	return Response{Stdout: stdout}
}

// Fail is a failed response with exit code 1 and the given stderr.
func Fail(stderr string) Response {
	return Response{ExitCode: 1, Stderr: stderr}
}

// Fake records every command and answers from scripted responses keyed by the
// command line (runner.Command.String). Queued responses are consumed in order
// and the last one repeats. Commands without a script succeed with no output.
type Fake struct {
	queues   map[string][]Response
	handlers map[string]func(runner.Command) Response
	calls    []runner.Command
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		queues:   map[string][]Response{},
		handlers: map[string]func(runner.Command) Response{},
	}
}

// On scripts responses for the exact command line.
func (f *Fake) On(line string, responses ...Response) *Fake {
	f.queues[line] = append(f.queues[line], responses...)

	return f
}

// OnFunc answers the exact command line with handler, which may keep state.
func (f *Fake) OnFunc(line string, handler func(runner.Command) Response) *Fake {
	f.handlers[line] = handler

	return f
}

// Run implements runner.CommandRunner.
func (f *Fake) Run(_ context.Context, command runner.Command) runner.CommandResult {
	f.calls = append(f.calls, command)

	line := command.String()
	response := f.next(command, line)

	return runner.CommandResult{
		Command:  line,
		Elevated: command.Elevated,
		ExitCode: response.ExitCode,
		Stdout:   response.Stdout,
		Stderr:   response.Stderr,
	}
}

func (f *Fake) next(command runner.Command, line string) Response {
	if handler, ok := f.handlers[line]; ok {
		return handler(command)
	}

	queue, ok := f.queues[line]
	if !ok || len(queue) == 0 {
		return Response{}
	}

	if len(queue) > 1 {
		f.queues[line] = queue[1:]
	}

	return queue[0]
}

// Calls returns the recorded commands in execution order.
func (f *Fake) Calls() []runner.Command {
	return append([]runner.Command(nil), f.calls...)
}

// Lines returns the recorded command lines in execution order.
func (f *Fake) Lines() []string {
	lines := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		lines = append(lines, call.String())
	}

	return lines
}

// Count returns how often the exact command line ran.
func (f *Fake) Count(line string) int {
	count := 0

	for _, call := range f.calls {
		if call.String() == line {
			count++
		}
	}

	return count
}

// CountPrefix returns how many recorded command lines start with prefix.
func (f *Fake) CountPrefix(prefix string) int {
	count := 0

	for _, call := range f.calls {
		if strings.HasPrefix(call.String(), prefix) {
			count++
		}
	}

	return count
}

// Reset forgets the recorded calls but keeps the scripts.
func (f *Fake) Reset() {
	f.calls = nil
}
