package runner

import (
	"os"

	"golang.org/x/term"
)

// Elevator rewrites a command line so it runs with elevated privileges.
// Implementations must obtain authorization through a secure channel and never
// embed a credential in the returned arguments.
type Elevator interface {
	Elevate(name string, args []string) (string, []string)
}

// NoElevation runs elevated commands unchanged. It is used when the process
// already has the required privileges or on platforms without sudo.
type NoElevation struct{}

// Elevate returns the command unchanged.
func (NoElevation) Elevate(name string, args []string) (string, []string) {
	return name, args
}

// SudoElevator elevates through sudo. On an interactive terminal sudo prompts
// on the TTY itself; otherwise it runs with -n and relies on pre-authorized
// credentials, failing with a non-zero exit instead of hanging.
type SudoElevator struct {
	Interactive bool
	Root        bool
}

// DetectSudoElevator inspects the current process to decide how sudo is invoked.
func DetectSudoElevator() SudoElevator {
	return SudoElevator{
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		Root:        os.Geteuid() == 0,
	}
}

// Elevate prefixes the command with sudo unless the process is already root.
func (s SudoElevator) Elevate(name string, args []string) (string, []string) {
	if s.Root {
		return name, args
	}

	sudoArgs := make([]string, 0, len(args)+3)
	if !s.Interactive {
		sudoArgs = append(sudoArgs, "-n")
	}

	sudoArgs = append(sudoArgs, "--", name)
	sudoArgs = append(sudoArgs, args...)

	return "sudo", sudoArgs
}
