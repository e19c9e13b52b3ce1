// Package kindgenerator renders kind cluster descriptors.
package kindgenerator

import (
	"fmt"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/fsutil"
	"github.com/devantler-tech/awxctl/pkg/io/generator"
	"github.com/devantler-tech/awxctl/pkg/io/marshaller"
	"sigs.k8s.io/kind/pkg/apis/config/v1alpha4"
)

const (
	apiVersion = "kind.x-k8s.io/v1alpha4"
	kind       = "Cluster"
)

// KindGenerator generates a kind Cluster YAML.
type KindGenerator struct {
	Marshaller marshaller.Marshaller[*v1alpha4.Cluster]
}

var _ generator.Generator[*v1alpha4.Cluster] = (*KindGenerator)(nil)

// NewKindGenerator creates and returns a new KindGenerator instance.
func NewKindGenerator() *KindGenerator {
	return &KindGenerator{
		Marshaller: marshaller.NewYAMLMarshaller[*v1alpha4.Cluster](),
	}
}

// NewCluster builds a single control-plane kind cluster carrying the
// descriptor's port mappings in order.
func NewCluster(spec v1alpha1.ClusterSpec) *v1alpha4.Cluster {
	mappings := make([]v1alpha4.PortMapping, 0, len(spec.PortMappings))
	for _, mapping := range spec.PortMappings {
		mappings = append(mappings, v1alpha4.PortMapping{
			ContainerPort: mapping.ContainerPort,
			HostPort:      mapping.HostPort,
			Protocol:      v1alpha4.PortMappingProtocol(mapping.Protocol),
		})
	}

	return &v1alpha4.Cluster{
		TypeMeta: v1alpha4.TypeMeta{Kind: kind, APIVersion: apiVersion},
		Name:     spec.Name,
		Nodes: []v1alpha4.Node{
			{
				Role:              v1alpha4.ControlPlaneRole,
				ExtraPortMappings: mappings,
			},
		},
	}
}

// Generate renders cfg and writes it to opts.Output when set.
func (g *KindGenerator) Generate(cfg *v1alpha4.Cluster, opts generator.Options) (string, error) {
	cfg.APIVersion = apiVersion
	cfg.Kind = kind

	out, err := g.Marshaller.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal kind config: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.WriteFile(out, opts.Output)
		if err != nil {
			return "", fmt.Errorf("write kind config: %w", err)
		}

		return result, nil
	}

	return out, nil
}
