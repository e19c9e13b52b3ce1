package installer

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/devantler-tech/awxctl/pkg/cmd/runner"
	"github.com/devantler-tech/awxctl/pkg/svc/probe"
)

// Step is one templated command of a recipe. Args and Stdin are rendered with
// text/template and the sprig function map against RecipeVars.
type Step struct {
	Name     string
	Args     []string
	Elevated bool
	Stdin    string
}

// Recipe is an ordered list of steps.
type Recipe []Step

// Key selects a recipe.
type Key struct {
	Tool   string
	Family probe.OSFamily
}

// RecipeVars are the values recipes are rendered with.
type RecipeVars struct {
	OS                string
	Arch              string
	TempDir           string
	KindVersion       string
	KubernetesChannel string
}

// DefaultRecipeVars uses the running platform and the given pinned versions.
func DefaultRecipeVars(kindVersion, kubernetesChannel string) RecipeVars {
	return RecipeVars{
		OS:                runtime.GOOS,
		Arch:              runtime.GOARCH,
		TempDir:           os.TempDir(),
		KindVersion:       kindVersion,
		KubernetesChannel: kubernetesChannel,
	}
}

// Render expands every step into a command.
func (r Recipe) Render(vars RecipeVars) ([]runner.Command, error) {
	commands := make([]runner.Command, 0, len(r))

	for _, step := range r {
		command, err := step.render(vars)
		if err != nil {
			return nil, fmt.Errorf("render step %q: %w", step.Name, err)
		}

		commands = append(commands, command)
	}

	return commands, nil
}

func (s Step) render(vars RecipeVars) (runner.Command, error) {
	if len(s.Args) == 0 {
		return runner.Command{}, errEmptyStep
	}

	args := make([]string, 0, len(s.Args)-1)

	for _, arg := range s.Args[1:] {
		rendered, err := renderTemplate(arg, vars)
		if err != nil {
			return runner.Command{}, err
		}

		args = append(args, rendered)
	}

	stdin, err := renderTemplate(s.Stdin, vars)
	if err != nil {
		return runner.Command{}, err
	}

	return runner.Command{Name: s.Args[0], Args: args, Elevated: s.Elevated, Stdin: stdin}, nil
}

func renderTemplate(text string, vars RecipeVars) (string, error) {
	tmpl, err := template.New("step").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var out bytes.Buffer

	err = tmpl.Execute(&out, vars)
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return out.String(), nil
}

const (
	// channel renders the kubernetes package channel with exactly one leading "v".
	channel = `{{ .KubernetesChannel | trimPrefix "v" | printf "v%s" }}`
	// kindVersion renders the kind release with exactly one leading "v".
	kindVersion = `{{ .KindVersion | trimPrefix "v" | printf "v%s" }}`
)

const kubernetesYumRepo = `[kubernetes]
name=Kubernetes
baseurl=https://pkgs.k8s.io/core:/stable:/` + channel + `/rpm/
enabled=1
gpgcheck=1
gpgkey=https://pkgs.k8s.io/core:/stable:/` + channel + `/rpm/repodata/repomd.xml.key
`

const kubernetesAptSource = `deb [signed-by=/etc/apt/keyrings/kubernetes-apt-keyring.gpg] ` +
	`https://pkgs.k8s.io/core:/stable:/` + channel + `/deb/ /
`

func helmScriptRecipe() Recipe {
	script := "{{ .TempDir }}/get_helm.sh"

	return Recipe{
		{
			Name: "download helm install script",
			Args: []string{
				"curl", "-fsSL", "-o", script,
				"https://raw.githubusercontent.com/helm/helm/main/scripts/get-helm-3",
			},
		},
		{Name: "mark script executable", Args: []string{"chmod", "700", script}},
		{Name: "run helm install script", Args: []string{"bash", script}},
	}
}

func kindBinaryRecipe() Recipe {
	binary := "{{ .TempDir }}/kind"

	return Recipe{
		{
			Name: "download kind",
			Args: []string{
				"curl", "-fsSLo", binary,
				"https://kind.sigs.k8s.io/dl/" + kindVersion + "/kind-{{ .OS | lower }}-{{ .Arch | lower }}",
			},
		},
		{
			Name:     "install kind",
			Args:     []string{"install", "-m", "0755", binary, "/usr/local/bin/kind"},
			Elevated: true,
		},
	}
}

// DefaultRecipes is the static install table.
func DefaultRecipes() map[Key]Recipe {
	return map[Key]Recipe{
		{Tool: probe.ToolKubectl, Family: probe.FamilyRedHat}: {
			{
				Name:     "add kubernetes yum repository",
				Args:     []string{"tee", "/etc/yum.repos.d/kubernetes.repo"},
				Elevated: true,
				Stdin:    kubernetesYumRepo,
			},
			{Name: "install kubectl", Args: []string{"yum", "install", "-y", "kubectl"}, Elevated: true},
		},
		{Tool: probe.ToolKubectl, Family: probe.FamilyDebian}: {
			{Name: "refresh package index", Args: []string{"apt-get", "update"}, Elevated: true},
			{
				Name: "install transport prerequisites",
				Args: []string{
					"apt-get", "install", "-y", "apt-transport-https", "ca-certificates", "curl", "gpg",
				},
				Elevated: true,
			},
			{
				Name:     "create keyring directory",
				Args:     []string{"mkdir", "-p", "-m", "755", "/etc/apt/keyrings"},
				Elevated: true,
			},
			{
				Name: "download kubernetes signing key",
				Args: []string{
					"curl", "-fsSLo", "{{ .TempDir }}/kubernetes-release.key",
					"https://pkgs.k8s.io/core:/stable:/" + channel + "/deb/Release.key",
				},
			},
			{
				Name: "install kubernetes signing key",
				Args: []string{
					"gpg", "--batch", "--yes", "--dearmor",
					"-o", "/etc/apt/keyrings/kubernetes-apt-keyring.gpg",
					"{{ .TempDir }}/kubernetes-release.key",
				},
				Elevated: true,
			},
			{
				Name:     "add kubernetes apt source",
				Args:     []string{"tee", "/etc/apt/sources.list.d/kubernetes.list"},
				Elevated: true,
				Stdin:    kubernetesAptSource,
			},
			{Name: "refresh package index", Args: []string{"apt-get", "update"}, Elevated: true},
			{Name: "install kubectl", Args: []string{"apt-get", "install", "-y", "kubectl"}, Elevated: true},
		},
		{Tool: probe.ToolKubectl, Family: probe.FamilyMacOS}: {
			{Name: "install kubectl", Args: []string{"brew", "install", "kubectl"}},
		},
		{Tool: probe.ToolKubectl, Family: probe.FamilyWindows}: {
			{Name: "install kubectl", Args: []string{"choco", "install", "kubernetes-cli", "-y"}},
		},
		{Tool: probe.ToolHelm, Family: probe.FamilyRedHat}: helmScriptRecipe(),
		{Tool: probe.ToolHelm, Family: probe.FamilyDebian}: helmScriptRecipe(),
		{Tool: probe.ToolHelm, Family: probe.FamilyMacOS}: {
			{Name: "install helm", Args: []string{"brew", "install", "helm"}},
		},
		{Tool: probe.ToolHelm, Family: probe.FamilyWindows}: {
			{Name: "install helm", Args: []string{"choco", "install", "kubernetes-helm", "-y"}},
		},
		{Tool: probe.ToolKind, Family: probe.FamilyRedHat}: kindBinaryRecipe(),
		{Tool: probe.ToolKind, Family: probe.FamilyDebian}: kindBinaryRecipe(),
		{Tool: probe.ToolKind, Family: probe.FamilyMacOS}: {
			{Name: "install kind", Args: []string{"brew", "install", "kind"}},
		},
		{Tool: probe.ToolKind, Family: probe.FamilyWindows}: {
			{Name: "install kind", Args: []string{"choco", "install", "kind", "-y"}},
		},
	}
}
