package helm

import (
	"context"
	"fmt"
)

// EnsureRepository registers the repository unless one with the same name
// already exists. It reports whether the repository was added.
func EnsureRepository(ctx context.Context, client Interface, entry RepositoryEntry) (bool, error) {
	entries, err := client.ListRepositories(ctx)
	if err != nil {
		return false, err
	}

	if HasRepository(entries, entry.Name) {
		return false, nil
	}

	err = client.AddRepository(ctx, entry)
	if err != nil {
		return false, err
	}

	return true, nil
}

// InstallOrUpgradeChart makes sure the repository is registered and fresh,
// then installs or upgrades the release.
func InstallOrUpgradeChart(
	ctx context.Context,
	client Interface,
	repo RepositoryEntry,
	spec ChartSpec,
) error {
	_, err := EnsureRepository(ctx, client, repo)
	if err != nil {
		return fmt.Errorf("failed to add %s repository: %w", repo.Name, err)
	}

	err = client.UpdateRepository(ctx, repo.Name)
	if err != nil {
		return fmt.Errorf("failed to update %s repository: %w", repo.Name, err)
	}

	err = client.InstallOrUpgradeChart(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to install %s chart: %w", spec.ChartName, err)
	}

	return nil
}

// UninstallIfPresent uninstalls the release only when it is listed, so a
// missing release is treated as removed. It reports whether it uninstalled.
func UninstallIfPresent(ctx context.Context, client Interface, releaseName, namespace string) (bool, error) {
	releases, err := client.ListReleases(ctx, namespace)
	if err != nil {
		return false, err
	}

	if !HasRelease(releases, releaseName) {
		return false, nil
	}

	err = client.UninstallRelease(ctx, releaseName, namespace)
	if err != nil {
		return false, err
	}

	return true, nil
}
