// Package kubeconfig inspects kubeconfig files with client-go's loading rules.
package kubeconfig

import (
	"errors"
	"fmt"
	"os"

	"k8s.io/client-go/tools/clientcmd"
)

// HasContext reports whether the kubeconfig defines contextName. An empty
// path follows the default loading rules ($KUBECONFIG, then ~/.kube/config).
// A missing explicit file has no contexts.
func HasContext(path, contextName string) (bool, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()

	if path != "" {
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		rules.ExplicitPath = path
	}

	config, err := rules.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	_, ok := config.Contexts[contextName]

	return ok, nil
}
