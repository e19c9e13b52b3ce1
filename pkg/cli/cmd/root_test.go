package cmd_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/awxctl/pkg/cli/cmd"
	"github.com/devantler-tech/awxctl/pkg/cmd/runner/runnertest"
	"github.com/devantler-tech/awxctl/pkg/di"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRootCmd(t *testing.T, fake *runnertest.Fake, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	runtime := di.NewRuntimeWith(di.CommandRunnerModule(fake))
	root := cmd.NewRootCmdWithRuntime(runtime, "v1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--work-dir", t.TempDir()}, args...))
	root.SetContext(t.Context())

	return root, &out
}

func TestNewRootCmd_Version(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("v1.2.3", "abc123", "2026-01-01")

	assert.Equal(t, "awxctl", root.Use)
	assert.Equal(t, "v1.2.3 (Built on 2026-01-01 from Git SHA abc123)", root.Version)
	assert.True(t, root.SilenceUsage)
}

func TestRootCmd_Status(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, out := newTestRootCmd(t, fake, "--status")

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "state: absent")
	assert.Equal(t, []string{"kind get clusters"}, fake.Lines())
}

func TestRootCmd_ModesAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, _ := newTestRootCmd(t, fake, "--start", "--shutdown")

	err := root.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
	assert.Empty(t, fake.Lines())
}

func TestRootCmd_ShutdownRequiresRunning(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, _ := newTestRootCmd(t, fake, "--shutdown")

	err := root.Execute()

	require.ErrorIs(t, err, svcerrors.ErrInvalidTransition)
}

func TestRootCmd_StartRequiresStopped(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, _ := newTestRootCmd(t, fake, "--start")

	err := root.Execute()

	require.ErrorIs(t, err, svcerrors.ErrInvalidTransition)
}

func TestRootCmd_StartWarnsWhenCredentialUnreadable(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "awxctl.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`apiVersion: awxctl.devantler.tech/v1alpha1
kind: Config
spec:
  polling:
    workload:
      interval: 1ms
      attempts: 3
    secret:
      interval: 1ms
      attempts: 3
`), 0o600))

	const suffix = " --namespace awx --context kind-awx-cluster"

	deployment := func(name string, replicas, ready int) runnertest.Response {
		return runnertest.OK(fmt.Sprintf(`{"apiVersion":"apps/v1","kind":"Deployment",`+
			`"metadata":{"name":%q,"namespace":"awx","generation":1},"spec":{"replicas":%d},`+
			`"status":{"observedGeneration":1,"readyReplicas":%d,"availableReplicas":%d}}`,
			name, replicas, ready, ready))
	}

	fake := runnertest.NewFake().
		On("kind get clusters", runnertest.OK("awx-cluster\n")).
		On("kubectl get crd awxs.awx.ansible.com --ignore-not-found -o name --context kind-awx-cluster",
			runnertest.OK("customresourcedefinition.apiextensions.k8s.io/awxs.awx.ansible.com\n")).
		On("kubectl get awx awx --ignore-not-found -o name"+suffix, runnertest.OK("awx.awx.ansible.com/awx\n")).
		On("kubectl get deployment awx-operator-controller-manager --ignore-not-found -o json"+suffix,
			deployment("awx-operator-controller-manager", 0, 0),
			deployment("awx-operator-controller-manager", 1, 1)).
		On("kubectl get deployment awx-web --ignore-not-found -o json"+suffix, deployment("awx-web", 1, 1)).
		On("kubectl get deployment awx-task --ignore-not-found -o json"+suffix, deployment("awx-task", 1, 1)).
		On("kubectl get secret awx-admin-password --ignore-not-found -o json"+suffix,
			runnertest.Fail("error: You must be logged in to the server (Unauthorized)"))

	root, out := newTestRootCmd(t, fake, "--start", "--config", configPath)

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "could not read the admin password")
	assert.Contains(t, out.String(), "Unauthorized")
	assert.Contains(t, out.String(), "state: running")
	assert.Equal(t, 1, fake.Count("kubectl scale deployment awx-task --replicas=1"+suffix))
}

func TestRootCmd_CleanupWithoutCluster(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	configPath := filepath.Join(workDir, "kind-config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("kind: Cluster\n"), 0o600))

	fake := runnertest.NewFake()
	root, out := newTestRootCmd(t, fake, "--cleanup", "--work-dir", workDir)

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "state: removed")
	assert.NoFileExists(t, configPath)
	assert.Equal(t, []string{"kind get clusters"}, fake.Lines())
}

func TestRootCmd_InvalidClusterName(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, _ := newTestRootCmd(t, fake, "--status", "--cluster-name", "Not_Valid")

	err := root.Execute()

	require.Error(t, err)
	assert.Empty(t, fake.Lines())
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, _ := newTestRootCmd(t, fake, "deploy")

	require.Error(t, root.Execute())
	assert.Empty(t, fake.Lines())
}

func TestExecute_WrapsFailure(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake()
	root, _ := newTestRootCmd(t, fake, "--shutdown")

	err := cmd.Execute(root)

	require.ErrorIs(t, err, svcerrors.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "command execution failed")
}
