package helm_test

import (
	"testing"

	"github.com/devantler-tech/awxctl/pkg/client/helm"
	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
	svcerrors "github.com/devantler-tech/awxctl/pkg/svc/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pinned output of `helm repo list -o json` (helm v3.14).
const repoListOutput = `[{"name":"bitnami","url":"https://charts.bitnami.com/bitnami"},` +
	`{"name":"awx-operator","url":"https://ansible-community.github.io/awx-operator-helm/"}]
`

// Pinned output of `helm list --all -n awx -o json` (helm v3.14).
const releaseListOutput = `[{"name":"awx-operator","namespace":"awx","revision":"2",` +
	`"updated":"2024-05-02 10:11:12.123456 +0000 UTC","status":"deployed",` +
	`"chart":"awx-operator-2.19.1","app_version":"2.19.1"}]
`

func TestParseRepositories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  runner.CommandResult
		want    []helm.RepositoryEntry
		wantErr error
	}{
		{
			name:   "registered repositories",
			result: runner.CommandResult{Stdout: repoListOutput},
			want: []helm.RepositoryEntry{
				{Name: "bitnami", URL: "https://charts.bitnami.com/bitnami"},
				{Name: "awx-operator", URL: "https://ansible-community.github.io/awx-operator-helm/"},
			},
		},
		{
			name:   "no repositories error is an empty list",
			result: runner.CommandResult{ExitCode: 1, Stderr: "Error: no repositories to show\n"},
		},
		{
			name:    "other failures are surfaced",
			result:  runner.CommandResult{ExitCode: 1, Stderr: "Error: no repositories to show yet\n"},
			wantErr: svcerrors.ErrCommandFailure,
		},
		{
			name:   "empty stdout",
			result: runner.CommandResult{Stdout: "\n"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := helm.ParseRepositories(test.result)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseRepositories_MalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := helm.ParseRepositories(runner.CommandResult{Stdout: "NAME\tURL\nawx-operator\thttps://x\n"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse helm repositories")
}

func TestParseReleases(t *testing.T) {
	t.Parallel()

	releases, err := helm.ParseReleases(releaseListOutput)

	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, helm.ReleaseInfo{
		Name:       "awx-operator",
		Namespace:  "awx",
		Revision:   "2",
		Status:     "deployed",
		Chart:      "awx-operator-2.19.1",
		AppVersion: "2.19.1",
	}, releases[0])

	empty, err := helm.ParseReleases("[]\n")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHasRepositoryAndRelease_ExactMatch(t *testing.T) {
	t.Parallel()

	entries := []helm.RepositoryEntry{{Name: "awx-operator-legacy"}}
	assert.False(t, helm.HasRepository(entries, "awx-operator"))
	assert.True(t, helm.HasRepository(entries, "awx-operator-legacy"))

	releases := []helm.ReleaseInfo{{Name: "awx-operator-old"}}
	assert.False(t, helm.HasRelease(releases, "awx-operator"))
}
