package v1alpha1

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

// clusterNameRegex matches DNS-1123 labels: lowercase alphanumeric with optional hyphens.
var clusterNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// ClusterNameMaxLength is the maximum length for a cluster name.
const ClusterNameMaxLength = 63

const maxPort = 65535

// ValidateClusterName validates that a cluster name is DNS-1123 compliant.
// Kind uses it in container names and the kind-<name> kubeconfig context.
func ValidateClusterName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: cluster.name", ErrMissingField)
	}

	if len(name) > ClusterNameMaxLength {
		return fmt.Errorf(
			"%w: %q exceeds max %d characters (got %d)",
			ErrClusterNameTooLong, name, ClusterNameMaxLength, len(name),
		)
	}

	if !clusterNameRegex.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must be DNS-1123 compliant "+
				"(lowercase letters, numbers, and hyphens; must start with a letter; "+
				"must not end with a hyphen)",
			ErrClusterNameInvalid, name,
		)
	}

	return nil
}

// Validate checks the whole configuration and joins every problem found.
func (c *Config) Validate() error {
	spec := c.Spec

	errs := []error{ValidateClusterName(spec.Cluster.Name)}

	for i, mapping := range spec.Cluster.PortMappings {
		errs = append(errs,
			validatePort(fmt.Sprintf("cluster.portMappings[%d].containerPort", i), mapping.ContainerPort),
			validatePort(fmt.Sprintf("cluster.portMappings[%d].hostPort", i), mapping.HostPort),
		)

		protocol := mapping.Protocol
		if !slices.Contains(protocol.ValidValues(), string(protocol)) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidProtocol, protocol))
		}
	}

	errs = append(errs, requireFields(map[string]string{
		"workDir":              spec.WorkDir,
		"operator.repoName":    spec.Operator.RepoName,
		"operator.repoURL":     spec.Operator.RepoURL,
		"operator.chart":       spec.Operator.Chart,
		"operator.release":     spec.Operator.Release,
		"operator.namespace":   spec.Operator.Namespace,
		"operator.deployment":  spec.Operator.Deployment,
		"instance.name":        spec.Instance.Name,
		"instance.adminUser":   spec.Instance.AdminUser,
		"tools.kindVersion":    spec.Tools.KindVersion,
		"tools.kubeChannel":    spec.Tools.KubernetesChannel,
		"instance.serviceType": string(spec.Instance.ServiceType),
	})...)

	serviceType := spec.Instance.ServiceType
	if serviceType != "" && !slices.Contains(serviceType.ValidValues(), string(serviceType)) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidServiceType, serviceType))
	}

	if serviceType == ServiceTypeNodePort {
		errs = append(errs, validatePort("instance.nodePort", spec.Instance.NodePort))
	}

	errs = append(errs,
		validatePoll("polling.cluster", spec.Polling.Cluster),
		validatePoll("polling.workload", spec.Polling.Workload),
		validatePoll("polling.secret", spec.Polling.Secret),
	)

	return errors.Join(errs...)
}

func validatePort(field string, port int32) error {
	if port < 1 || port > maxPort {
		return fmt.Errorf("%w: %s=%d (must be 1-%d)", ErrInvalidPort, field, port, maxPort)
	}

	return nil
}

func validatePoll(field string, poll Poll) error {
	if poll.Attempts < 1 || poll.Interval < 0 {
		return fmt.Errorf("%w: %s (attempts=%d, interval=%s)",
			ErrInvalidPolling, field, poll.Attempts, poll.Interval)
	}

	return nil
}

func requireFields(fields map[string]string) []error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}

	slices.Sort(names)

	var errs []error

	for _, name := range names {
		if fields[name] == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, name))
		}
	}

	return errs
}
