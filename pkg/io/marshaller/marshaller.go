// Package marshaller serializes models for generated artifacts.
package marshaller

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Marshaller converts models to text.
type Marshaller[T any] interface {
	Marshal(model T) (string, error)
}

// YAMLMarshaller marshals through sigs.k8s.io/yaml, so json struct tags apply.
type YAMLMarshaller[T any] struct{}

// NewYAMLMarshaller creates a YAMLMarshaller for T.
func NewYAMLMarshaller[T any]() *YAMLMarshaller[T] {
	return &YAMLMarshaller[T]{}
}

// Marshal renders model as YAML.
func (m *YAMLMarshaller[T]) Marshal(model T) (string, error) {
	data, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return string(data), nil
}
