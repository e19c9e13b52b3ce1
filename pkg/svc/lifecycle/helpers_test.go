package lifecycle_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/client/helm"
	kindclient "github.com/devantler-tech/awxctl/pkg/client/kind"
	"github.com/devantler-tech/awxctl/pkg/client/kubectl"
	"github.com/devantler-tech/awxctl/pkg/cmd/runner/runnertest"
	"github.com/devantler-tech/awxctl/pkg/k8s/readiness"
	"github.com/devantler-tech/awxctl/pkg/svc/deployer"
	"github.com/devantler-tech/awxctl/pkg/svc/lifecycle"
	kindprovisioner "github.com/devantler-tech/awxctl/pkg/svc/provisioner/cluster/kind"
)

const (
	kubeContext = "kind-awx-cluster"

	getClusters = "kind get clusters"
	crdCheck    = "kubectl get crd awxs.awx.ansible.com --ignore-not-found -o name --context kind-awx-cluster"
	awxCheck    = "kubectl get awx awx --ignore-not-found -o name --namespace awx --context kind-awx-cluster"
	operatorGet = "kubectl get deployment awx-operator-controller-manager --ignore-not-found -o json " +
		"--namespace awx --context kind-awx-cluster"
	webGet    = "kubectl get deployment awx-web --ignore-not-found -o json --namespace awx --context kind-awx-cluster"
	taskGet   = "kubectl get deployment awx-task --ignore-not-found -o json --namespace awx --context kind-awx-cluster"
	secretGet = "kubectl get secret awx-admin-password --ignore-not-found -o json " +
		"--namespace awx --context kind-awx-cluster"
	releaseList = "helm list --all --namespace awx -o json --kube-context kind-awx-cluster"
)

const (
	noClusters = "No kind clusters found.\n"
	awxCluster = "awx-cluster\n"
	crdName    = "customresourcedefinition.apiextensions.k8s.io/awxs.awx.ansible.com\n"
	awxName    = "awx.awx.ansible.com/awx\n"
	readyNodes = `{"apiVersion":"v1","kind":"List","items":[` +
		`{"metadata":{"name":"awx-cluster-control-plane"},` +
		`"status":{"conditions":[{"type":"Ready","status":"True"}]}}]}`
	adminSecret = `{"apiVersion":"v1","kind":"Secret","metadata":{"name":"awx-admin-password","namespace":"awx"},` +
		`"data":{"password":"czNjcjN0LXBhc3N3b3Jk"}}`
	installedRelease = `[{"name":"awx-operator","namespace":"awx","revision":"1","status":"deployed",` +
		`"chart":"awx-operator-2.19.1","app_version":"2.19.1"}]`
)

func scaleLine(name string, replicas int) string {
	return fmt.Sprintf("kubectl scale deployment %s --replicas=%d --namespace awx --context kind-awx-cluster",
		name, replicas)
}

// deploymentJSON renders a deployment as printed by `kubectl get -o json`.
func deploymentJSON(name string, replicas, ready int32) string {
	return fmt.Sprintf(`{"apiVersion":"apps/v1","kind":"Deployment",`+
		`"metadata":{"name":%q,"namespace":"awx","generation":2},"spec":{"replicas":%d},`+
		`"status":{"observedGeneration":2,"readyReplicas":%d,"availableReplicas":%d}}`,
		name, replicas, ready, ready)
}

func testSpec(t *testing.T) v1alpha1.Spec {
	t.Helper()

	spec := v1alpha1.NewSpec()
	spec.WorkDir = t.TempDir()
	spec.Cluster.Kubeconfig = filepath.Join(t.TempDir(), "kubeconfig")

	fast := v1alpha1.Poll{Interval: time.Millisecond, Attempts: 3}
	spec.Polling = v1alpha1.PollingSpec{Cluster: fast, Workload: fast, Secret: fast}

	return spec
}

type harness struct {
	fake       *runnertest.Fake
	controller *lifecycle.Controller
	out        *bytes.Buffer
	spec       v1alpha1.Spec
}

func newHarness(t *testing.T, fake *runnertest.Fake) harness {
	t.Helper()

	spec := testSpec(t)
	kubectlClient := kubectl.NewClient(fake, kubeContext)
	out := &bytes.Buffer{}

	provisioner := kindprovisioner.NewKindClusterProvisioner(
		kindclient.NewClient(fake),
		kubectlClient,
		spec.WorkDir,
		readiness.Backoff{Interval: time.Millisecond, MaxAttempts: 3},
	)
	appDeployer := deployer.NewDeployer(helm.NewClient(fake, kubeContext), kubectlClient, spec.WorkDir)

	return harness{
		fake:       fake,
		controller: lifecycle.NewController(provisioner, appDeployer, kubectlClient, spec, out),
		out:        out,
		spec:       spec,
	}
}

// deployed scripts a cluster with the AWX CRD and instance present.
func deployed() *runnertest.Fake {
	return runnertest.NewFake().
		On(getClusters, runnertest.OK(awxCluster)).
		On(crdCheck, runnertest.OK(crdName)).
		On(awxCheck, runnertest.OK(awxName))
}
