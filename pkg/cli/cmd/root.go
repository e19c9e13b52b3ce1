package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/devantler-tech/awxctl/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/awxctl/pkg/di"
	configmanager "github.com/devantler-tech/awxctl/pkg/io/config-manager/awx"
	"github.com/devantler-tech/awxctl/pkg/svc/lifecycle"
	"github.com/devantler-tech/awxctl/pkg/svc/setup"
	"github.com/devantler-tech/awxctl/pkg/utils/notify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Mode flags. At most one may be set; none runs the full setup.
const (
	FlagStart    = "start"
	FlagShutdown = "shutdown"
	FlagCleanup  = "cleanup"
	FlagStatus   = "status"
	FlagConfig   = "config"
)

// NewRootCmd creates the root command with version info.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command resolving its services from runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "awxctl",
		Short: "Deploy AWX on a local kind cluster and manage its lifecycle",
		Long: "awxctl checks the host, installs missing tools, creates a kind cluster and " +
			"deploys AWX through the awx-operator. Mode flags start, stop or remove an " +
			"existing deployment.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handleRootRunE(cmd, runtime)
		},
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	flags := cmd.Flags()
	flags.Bool(FlagStart, false, "Start a stopped AWX deployment")
	flags.Bool(FlagShutdown, false, "Scale AWX down and keep the cluster")
	flags.Bool(FlagCleanup, false, "Remove AWX, the cluster and generated files")
	flags.Bool(FlagStatus, false, "Print the current lifecycle state")
	flags.String(FlagConfig, "", "Path to an awxctl.yaml config file")
	flags.BoolP(configmanager.FlagVerbose, "v", false, "Log every external command")
	flags.String(configmanager.FlagWorkDir, "", "Directory for generated files")
	flags.String(configmanager.FlagClusterName, "", "Name of the kind cluster")

	cmd.MarkFlagsMutuallyExclusive(FlagStart, FlagShutdown, FlagCleanup, FlagStatus)

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// --- internals ---

func handleRootRunE(cmd *cobra.Command, runtime *di.Runtime) error {
	configFile, err := cmd.Flags().GetString(FlagConfig)
	if err != nil {
		return fmt.Errorf("failed to read --%s: %w", FlagConfig, err)
	}

	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())
	manager := configmanager.NewConfigManager(out, configFile)

	err = manager.BindFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	cfg, err := manager.Load(configmanager.LoadOptions{})
	if err != nil {
		return err
	}

	// The executor buffers the error stream, so logs go to the unbuffered side.
	logger := newLogger(cmd.OutOrStderr(), cfg.Spec.Verbose)
	handler := selectHandler(cmd.Flags())

	return runtime.Invoke(func(injector di.Injector) error {
		return handler(cmd.Context(), out, injector)
	}, di.Inputs(cfg, out, logger))
}

type modeHandler func(ctx context.Context, out io.Writer, injector di.Injector) error

func selectHandler(flags *pflag.FlagSet) modeHandler {
	modes := []struct {
		flag    string
		handler modeHandler
	}{
		{FlagStart, handleStart},
		{FlagShutdown, handleShutdown},
		{FlagCleanup, handleCleanup},
		{FlagStatus, handleStatus},
	}

	for _, mode := range modes {
		if set, _ := flags.GetBool(mode.flag); set {
			return mode.handler
		}
	}

	return handleSetup
}

func newLogger(writer io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

func handleSetup(ctx context.Context, out io.Writer, injector di.Injector) error {
	pipeline, err := di.ResolvePipeline(injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, "🚀", "Setting up AWX...")

	report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	printReport(out, report)

	return nil
}

func handleStart(ctx context.Context, out io.Writer, injector di.Injector) error {
	controller, err := di.ResolveController(injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, "▶️", "Starting AWX...")

	state, credential, err := controller.Start(ctx)
	if err != nil {
		if state != lifecycle.StateRunning {
			return err
		}

		notify.Warningf(out, "could not read the admin password: %v", err)
	}

	notify.Infof(out, "state: %s", state)
	printCredential(out, credential)

	return nil
}

func handleShutdown(ctx context.Context, out io.Writer, injector di.Injector) error {
	controller, err := di.ResolveController(injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, "⏸️", "Shutting down AWX...")

	state, err := controller.Shutdown(ctx)
	if err != nil {
		return err
	}

	notify.Infof(out, "state: %s", state)

	return nil
}

func handleCleanup(ctx context.Context, out io.Writer, injector di.Injector) error {
	controller, err := di.ResolveController(injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, "🗑️", "Cleaning up AWX...")

	state, err := controller.Cleanup(ctx)
	if err != nil {
		return err
	}

	notify.Infof(out, "state: %s", state)

	return nil
}

func handleStatus(ctx context.Context, out io.Writer, injector di.Injector) error {
	controller, err := di.ResolveController(injector)
	if err != nil {
		return err
	}

	state, err := controller.State(ctx)
	if err != nil {
		return err
	}

	notify.Infof(out, "state: %s", state)

	return nil
}

func printReport(out io.Writer, report setup.Report) {
	notify.Successf(out, "AWX is %s at %s", report.State, report.URL)
	printCredential(out, lifecycle.Credential{Username: report.Username, Password: report.Password})
}

func printCredential(out io.Writer, credential lifecycle.Credential) {
	if credential.Password == "" {
		return
	}

	notify.Infof(out, "username: %s", credential.Username)
	notify.Infof(out, "password: %s", credential.Password)
}
