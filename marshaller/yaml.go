package marshaller

import (
	"gopkg.in/yaml.v3"
)

// YAMLMarshaller marshals objects as YAML documents.
type YAMLMarshaller struct{}

var _ TypedMarshaller[struct{}] = TypedYAMLMarshaller[struct{}]{}

// NewYAMLMarshaller creates a new YAMLMarshaller.
func NewYAMLMarshaller() Marshaller {
	return YAMLMarshaller{}
}

// Marshal serializes the data to a YAML document.
func (m YAMLMarshaller) Marshal(data any) ([]byte, error) {
	marshalled, err := yaml.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal deserializes a YAML document into out, which must be a pointer.
func (m YAMLMarshaller) Unmarshal(data []byte, out any) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// TypedYAMLMarshaller is a generic YAML marshaller for typed objects.
type TypedYAMLMarshaller[T any] struct{}

// NewTypedYAMLMarshaller creates a new TypedYAMLMarshaller for the specified type.
func NewTypedYAMLMarshaller[T any]() TypedYAMLMarshaller[T] {
	return TypedYAMLMarshaller[T]{}
}

// Marshal serializes the typed data to a YAML document.
func (m TypedYAMLMarshaller[T]) Marshal(data T) ([]byte, error) {
	marshalled, err := yaml.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal deserializes a YAML document into a typed object.
func (m TypedYAMLMarshaller[T]) Unmarshal(data []byte) (T, error) {
	var out T

	if err := yaml.Unmarshal(data, &out); err != nil {
		return zero[T](), errUnmarshal(err)
	}

	return out, nil
}
