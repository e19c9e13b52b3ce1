package helm

// RepositoryEntry is a registered chart repository as listed by `helm repo list -o json`.
type RepositoryEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ReleaseInfo is a release as listed by `helm list -o json`.
type ReleaseInfo struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Revision   string `json:"revision"`
	Status     string `json:"status"`
	Chart      string `json:"chart"`
	AppVersion string `json:"app_version"`
}

// ChartSpec describes a chart release to install or upgrade.
type ChartSpec struct {
	ReleaseName string
	// ChartName is the repo-qualified chart reference, e.g. "awx-operator/awx-operator".
	ChartName       string
	Namespace       string
	Version         string
	CreateNamespace bool
}
