// Package awxgenerator renders the AWX custom resource manifest.
package awxgenerator

import (
	"fmt"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/fsutil"
	"github.com/devantler-tech/awxctl/pkg/io/generator"
	"github.com/devantler-tech/awxctl/pkg/io/marshaller"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

const (
	// APIVersion is the AWX custom resource API version.
	APIVersion = "awx.ansible.com/v1beta1"
	// Kind is the AWX custom resource kind.
	Kind = "AWX"
	// CRDName is the name of the AWX custom resource definition.
	CRDName = "awxs.awx.ansible.com"
)

// Instance identifies the AWX resource to render.
type Instance struct {
	Namespace string
	Spec      v1alpha1.InstanceSpec
}

// AWXGenerator generates the AWX instance manifest.
type AWXGenerator struct {
	Marshaller marshaller.Marshaller[map[string]any]
}

var _ generator.Generator[Instance] = (*AWXGenerator)(nil)

// NewAWXGenerator creates and returns a new AWXGenerator instance.
func NewAWXGenerator() *AWXGenerator {
	return &AWXGenerator{
		Marshaller: marshaller.NewYAMLMarshaller[map[string]any](),
	}
}

// NewManifest builds the AWX resource. The node port is only set for the
// node port service type.
func NewManifest(instance Instance) (*unstructured.Unstructured, error) {
	manifest := &unstructured.Unstructured{Object: map[string]any{}}
	manifest.SetAPIVersion(APIVersion)
	manifest.SetKind(Kind)
	manifest.SetName(instance.Spec.Name)
	manifest.SetNamespace(instance.Namespace)

	err := unstructured.SetNestedField(
		manifest.Object, string(instance.Spec.ServiceType), "spec", "service_type",
	)
	if err != nil {
		return nil, fmt.Errorf("set service type: %w", err)
	}

	if instance.Spec.ServiceType == v1alpha1.ServiceTypeNodePort {
		err = unstructured.SetNestedField(
			manifest.Object, int64(instance.Spec.NodePort), "spec", "nodeport_port",
		)
		if err != nil {
			return nil, fmt.Errorf("set node port: %w", err)
		}
	}

	return manifest, nil
}

// Generate renders the manifest and writes it to opts.Output when set.
// Rendering is deterministic, so re-applying the file is a no-op.
func (g *AWXGenerator) Generate(instance Instance, opts generator.Options) (string, error) {
	manifest, err := NewManifest(instance)
	if err != nil {
		return "", err
	}

	out, err := g.Marshaller.Marshal(manifest.Object)
	if err != nil {
		return "", fmt.Errorf("marshal awx manifest: %w", err)
	}

	if opts.Output != "" {
		result, err := fsutil.WriteFile(out, opts.Output)
		if err != nil {
			return "", fmt.Errorf("write awx manifest: %w", err)
		}

		return result, nil
	}

	return out, nil
}
