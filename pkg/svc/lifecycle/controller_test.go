package lifecycle_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devantler-tech/awxctl/pkg/client/kubectl"
	"github.com/devantler-tech/awxctl/pkg/cmd/runner/runnertest"
	"github.com/devantler-tech/awxctl/pkg/k8s/readiness"
	"github.com/devantler-tech/awxctl/pkg/svc/deployer"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	"github.com/devantler-tech/awxctl/pkg/svc/lifecycle"
	kindprovisioner "github.com/devantler-tech/awxctl/pkg/svc/provisioner/cluster/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fake *runnertest.Fake
		want lifecycle.State
	}{
		{
			name: "no cluster",
			fake: runnertest.NewFake().On(getClusters, runnertest.OK(noClusters)),
			want: lifecycle.StateAbsent,
		},
		{
			name: "cluster without awx crd",
			fake: runnertest.NewFake().On(getClusters, runnertest.OK(awxCluster)),
			want: lifecycle.StateAbsent,
		},
		{
			name: "crd without instance",
			fake: runnertest.NewFake().
				On(getClusters, runnertest.OK(awxCluster)).
				On(crdCheck, runnertest.OK(crdName)),
			want: lifecycle.StateAbsent,
		},
		{
			name: "operator missing",
			fake: deployed(),
			want: lifecycle.StateProvisioning,
		},
		{
			name: "operator not ready",
			fake: deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 0))),
			want: lifecycle.StateProvisioning,
		},
		{
			name: "operator scaled to zero",
			fake: deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0))),
			want: lifecycle.StateStopped,
		},
		{
			name: "operator ready",
			fake: deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))),
			want: lifecycle.StateRunning,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			state, err := newHarness(t, test.fake).controller.State(t.Context())

			require.NoError(t, err)
			assert.Equal(t, test.want, state)
		})
	}
}

func TestState_CommandFailure(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake().On(getClusters, runnertest.Fail("Cannot connect to the Docker daemon"))

	_, err := newHarness(t, fake).controller.State(t.Context())

	require.ErrorIs(t, err, svcerrors.ErrCommandFailure)
}

func TestDeploy_FreshCluster(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake().
		On(getClusters, runnertest.OK(noClusters), runnertest.OK(awxCluster)).
		On("kubectl get nodes -o json --context kind-awx-cluster", runnertest.OK(readyNodes))
	h := newHarness(t, fake)

	state, err := h.controller.Deploy(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRunning, state)
	assert.Equal(t, 1, fake.CountPrefix("kind create cluster --name awx-cluster"))
	assert.Equal(t, 1, fake.CountPrefix("helm upgrade --install awx-operator awx-operator/awx-operator"))
	assert.Equal(t, 1, fake.Count("kubectl apply -f "+filepath.Join(h.spec.WorkDir, deployer.ManifestFileName)+
		" --context kind-awx-cluster"))
	assert.FileExists(t, filepath.Join(h.spec.WorkDir, kindprovisioner.ConfigFileName))
	assert.Contains(t, h.out.String(), `cluster "awx-cluster" created`)
}

func TestShutdown_FromRunning(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet, runnertest.OK(deploymentJSON("awx-web", 1, 1))).
		On(taskGet, runnertest.OK(deploymentJSON("awx-task", 1, 1)))
	h := newHarness(t, fake)

	manifest := filepath.Join(h.spec.WorkDir, deployer.ManifestFileName)
	require.NoError(t, os.WriteFile(manifest, []byte("kind: AWX\n"), 0o600))

	state, err := h.controller.Shutdown(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateStopped, state)
	assert.FileExists(t, manifest)

	var scales []string

	for _, line := range fake.Lines() {
		if strings.HasPrefix(line, "kubectl scale") {
			scales = append(scales, line)
		}
	}

	assert.Equal(t, []string{
		scaleLine("awx-web", 0),
		scaleLine("awx-task", 0),
		scaleLine("awx-operator-controller-manager", 0),
	}, scales)
}

func TestShutdown_SkipsWorkloadsNotCreatedYet(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet, runnertest.OK(deploymentJSON("awx-web", 1, 1)))

	_, err := newHarness(t, fake).controller.Shutdown(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 1, fake.Count(scaleLine("awx-web", 0)))
	assert.Zero(t, fake.Count(scaleLine("awx-task", 0)))
	assert.Equal(t, 1, fake.Count(scaleLine("awx-operator-controller-manager", 0)))
}

func TestInvalidTransitions(t *testing.T) {
	t.Parallel()

	stopped := func() *runnertest.Fake {
		return deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0)))
	}
	running := func() *runnertest.Fake {
		return deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1)))
	}
	absent := func() *runnertest.Fake {
		return runnertest.NewFake().On(getClusters, runnertest.OK(noClusters))
	}

	tests := []struct {
		name string
		fake *runnertest.Fake
		run  func(ctx context.Context, h harness) error
	}{
		{
			name: "shutdown from stopped",
			fake: stopped(),
			run: func(ctx context.Context, h harness) error {
				_, err := h.controller.Shutdown(ctx)

				return err
			},
		},
		{
			name: "shutdown from absent",
			fake: absent(),
			run: func(ctx context.Context, h harness) error {
				_, err := h.controller.Shutdown(ctx)

				return err
			},
		},
		{
			name: "start from running",
			fake: running(),
			run: func(ctx context.Context, h harness) error {
				_, _, err := h.controller.Start(ctx)

				return err
			},
		},
		{
			name: "start from absent",
			fake: absent(),
			run: func(ctx context.Context, h harness) error {
				_, _, err := h.controller.Start(ctx)

				return err
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := test.run(t.Context(), newHarness(t, test.fake))

			require.ErrorIs(t, err, svcerrors.ErrInvalidTransition)
			assert.Zero(t, test.fake.CountPrefix("kubectl scale"))
		})
	}
}

func TestStart_FromStopped(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet,
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0)),
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet,
			runnertest.OK(deploymentJSON("awx-web", 1, 0)),
			runnertest.OK(deploymentJSON("awx-web", 1, 1))).
		On(taskGet, runnertest.OK(deploymentJSON("awx-task", 1, 1))).
		On(secretGet, runnertest.OK(""), runnertest.OK(adminSecret))
	h := newHarness(t, fake)

	state, credential, err := h.controller.Start(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRunning, state)
	assert.Equal(t, lifecycle.Credential{Username: "admin", Password: "s3cr3t-password"}, credential)

	lines := fake.Lines()
	operatorScale := indexOf(lines, scaleLine("awx-operator-controller-manager", 1))
	webScale := indexOf(lines, scaleLine("awx-web", 1))
	taskScale := indexOf(lines, scaleLine("awx-task", 1))

	require.NotEqual(t, -1, operatorScale)
	assert.Less(t, operatorScale, webScale)
	assert.Less(t, webScale, taskScale)
	assert.Equal(t, 2, fake.Count(webGet))
	assert.Equal(t, 2, fake.Count(secretGet))
}

func TestStart_WorkloadNeverReady(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet,
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0)),
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet, runnertest.OK(deploymentJSON("awx-web", 1, 0)))

	_, _, err := newHarness(t, fake).controller.Start(t.Context())

	require.ErrorIs(t, err, svcerrors.ErrWorkloadNotReady)
	require.ErrorIs(t, err, readiness.ErrAttemptsExhausted)
	assert.Equal(t, 3, fake.Count(webGet))
	assert.Equal(t, 1, fake.Count(scaleLine("awx-web", 1)))
	assert.Zero(t, fake.Count(scaleLine("awx-task", 1)))
	assert.Zero(t, fake.Count(secretGet))
}

func TestStart_WorkloadErrorIsReported(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet,
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0)),
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet,
			runnertest.OK(deploymentJSON("awx-web", 1, 0)),
			runnertest.Fail(`Error from server (Forbidden): deployments.apps "awx-web" is forbidden`))

	_, _, err := newHarness(t, fake).controller.Start(t.Context())

	require.ErrorIs(t, err, svcerrors.ErrWorkloadNotReady)
	require.ErrorIs(t, err, svcerrors.ErrCommandFailure)
	assert.Contains(t, err.Error(), `deployments.apps "awx-web" is forbidden`)
	assert.Equal(t, 3, fake.Count(webGet))
}

func TestStart_WaitsForWorkloadToBeCreated(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet,
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0)),
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet,
			runnertest.OK(""),
			runnertest.OK(deploymentJSON("awx-web", 0, 0)),
			runnertest.OK(deploymentJSON("awx-web", 1, 1))).
		On(taskGet, runnertest.OK(deploymentJSON("awx-task", 1, 1))).
		On(secretGet, runnertest.OK(adminSecret))

	state, _, err := newHarness(t, fake).controller.Start(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRunning, state)

	lines := fake.Lines()
	webScale := indexOf(lines, scaleLine("awx-web", 1))

	require.NotEqual(t, -1, webScale)
	assert.Equal(t, 2, strings.Count(strings.Join(lines[:webScale], "\n"), webGet))
	assert.Equal(t, 3, fake.Count(webGet))
}

func TestStart_WorkloadNeverCreated(t *testing.T) {
	t.Parallel()

	fake := deployed().
		On(operatorGet,
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0)),
			runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))).
		On(webGet, runnertest.OK(""))

	_, _, err := newHarness(t, fake).controller.Start(t.Context())

	require.ErrorIs(t, err, svcerrors.ErrWorkloadNotReady)
	require.ErrorIs(t, err, kubectl.ErrNotFound)
	assert.Equal(t, 3, fake.Count(webGet))
	assert.Zero(t, fake.Count(scaleLine("awx-web", 1)))
	assert.Zero(t, fake.Count(scaleLine("awx-task", 1)))
}

func TestCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response runnertest.Response
		err      error
		calls    int
	}{
		{
			name:     "never materializes",
			response: runnertest.OK(""),
			err:      svcerrors.ErrTransientNotFound,
			calls:    3,
		},
		{
			name:     "command failure is permanent",
			response: runnertest.Fail("error: You must be logged in to the server (Unauthorized)"),
			err:      svcerrors.ErrCommandFailure,
			calls:    1,
		},
		{
			name: "missing password key is permanent",
			response: runnertest.OK(`{"apiVersion":"v1","kind":"Secret",` +
				`"metadata":{"name":"awx-admin-password"},"data":{}}`),
			err:   lifecycle.ErrMissingPassword,
			calls: 1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			fake := runnertest.NewFake().On(secretGet, test.response)

			_, err := newHarness(t, fake).controller.Credential(t.Context())

			require.ErrorIs(t, err, test.err)
			assert.Equal(t, test.calls, fake.Count(secretGet))
		})
	}
}

func TestCleanup_FromEveryState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fake    *runnertest.Fake
		deletes int
	}{
		{
			name:    "running",
			fake:    deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 1, 1))),
			deletes: 1,
		},
		{
			name:    "stopped",
			fake:    deployed().On(operatorGet, runnertest.OK(deploymentJSON("awx-operator-controller-manager", 0, 0))),
			deletes: 1,
		},
		{
			name:    "provisioning",
			fake:    deployed(),
			deletes: 1,
		},
		{
			name:    "absent",
			fake:    runnertest.NewFake().On(getClusters, runnertest.OK(noClusters)),
			deletes: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, test.fake.On(releaseList, runnertest.OK(installedRelease)))
			descriptor := filepath.Join(h.spec.WorkDir, kindprovisioner.ConfigFileName)
			manifest := filepath.Join(h.spec.WorkDir, deployer.ManifestFileName)

			require.NoError(t, os.WriteFile(descriptor, []byte("kind: Cluster\n"), 0o600))
			require.NoError(t, os.WriteFile(manifest, []byte("kind: AWX\n"), 0o600))

			state, err := h.controller.Cleanup(t.Context())

			require.NoError(t, err)
			assert.Equal(t, lifecycle.StateRemoved, state)
			assert.NoFileExists(t, descriptor)
			assert.NoFileExists(t, manifest)
			assert.Equal(t, test.deletes, test.fake.Count("kind delete cluster --name awx-cluster"))
			assert.Equal(t, test.deletes,
				test.fake.Count("kubectl delete -f "+manifest+" --ignore-not-found --context kind-awx-cluster"))
			assert.Zero(t, test.fake.CountPrefix("kubectl scale"))
		})
	}
}

func TestCleanup_UnreachableClusterIsStillDeleted(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake().
		On(getClusters, runnertest.OK(awxCluster)).
		On(crdCheck, runnertest.Fail("The connection to the server 127.0.0.1:6443 was refused"))
	h := newHarness(t, fake)

	descriptor := filepath.Join(h.spec.WorkDir, kindprovisioner.ConfigFileName)
	require.NoError(t, os.WriteFile(descriptor, []byte("kind: Cluster\n"), 0o600))

	state, err := h.controller.Cleanup(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRemoved, state)
	assert.NoFileExists(t, descriptor)
	assert.Equal(t, 1, fake.Count("kind delete cluster --name awx-cluster"))
	assert.Contains(t, h.out.String(), "could not remove awx from the cluster")
	assert.Contains(t, h.out.String(), "was refused")
}

func TestCleanup_TwiceSucceeds(t *testing.T) {
	t.Parallel()

	fake := runnertest.NewFake().
		On(getClusters, runnertest.OK(awxCluster), runnertest.OK(awxCluster), runnertest.OK(noClusters)).
		On(crdCheck, runnertest.OK(crdName)).
		On(releaseList, runnertest.OK(installedRelease))
	h := newHarness(t, fake)

	descriptor := filepath.Join(h.spec.WorkDir, kindprovisioner.ConfigFileName)
	manifest := filepath.Join(h.spec.WorkDir, deployer.ManifestFileName)

	require.NoError(t, os.WriteFile(descriptor, []byte("kind: Cluster\n"), 0o600))
	require.NoError(t, os.WriteFile(manifest, []byte("kind: AWX\n"), 0o600))

	state, err := h.controller.Cleanup(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRemoved, state)
	assert.NoFileExists(t, descriptor)
	assert.NoFileExists(t, manifest)
	assert.Equal(t, 1, fake.Count("kubectl delete -f "+manifest+" --ignore-not-found --context kind-awx-cluster"))
	assert.Equal(t, 1, fake.Count("helm uninstall awx-operator --namespace awx --kube-context kind-awx-cluster"))
	assert.Equal(t, 1, fake.Count("kind delete cluster --name awx-cluster"))

	fake.Reset()

	state, err = h.controller.Cleanup(t.Context())

	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateRemoved, state)
	assert.Equal(t, []string{getClusters}, fake.Lines())
}

func indexOf(lines []string, line string) int {
	for index, candidate := range lines {
		if candidate == line {
			return index
		}
	}

	return -1
}
