// Package main is the entry point for awxctl.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/devantler-tech/awxctl/internal/buildmeta"
	"github.com/devantler-tech/awxctl/pkg/cli/cmd"
	"github.com/devantler-tech/awxctl/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/awxctl/pkg/utils/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	exitCode := runSafely(os.Args[1:], func(args []string) int {
		return runWithArgs(ctx, args)
	}, os.Stderr)

	stop()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			panicMessage := fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack())
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: panicMessage,
				Writer:  errWriter,
			})

			exitCode = 1
		}
	}()

	exitCode = runner(args)

	return exitCode
}

func runWithArgs(ctx context.Context, args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)
	rootCmd.SetContext(ctx)

	err := cmd.Execute(rootCmd)
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)

		return 1
	}

	return 0
}

func reportError(writer io.Writer, err error) {
	notify.Errorf(writer, "%v", err)

	if hint := errorhandler.Hint(err); hint != "" {
		notify.Infof(writer, "%s", hint)
	}
}
