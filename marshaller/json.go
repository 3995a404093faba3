package marshaller

import (
	"github.com/statecraft/go-statestore/internal/json"
)

// JSONMarshaller marshals objects as JSON text, the store's default
// value format. Stored objects stay readable by the value codec and
// by plain range queries.
type JSONMarshaller struct{}

var _ TypedMarshaller[struct{}] = TypedJSONMarshaller[struct{}]{}

// NewJSONMarshaller creates a new JSONMarshaller.
func NewJSONMarshaller() Marshaller {
	return JSONMarshaller{}
}

// Marshal serializes the data to JSON text.
func (m JSONMarshaller) Marshal(data any) ([]byte, error) {
	marshalled, err := json.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal deserializes JSON text into out, which must be a pointer.
func (m JSONMarshaller) Unmarshal(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// TypedJSONMarshaller is a generic JSON marshaller for typed objects.
type TypedJSONMarshaller[T any] struct{}

// NewTypedJSONMarshaller creates a new TypedJSONMarshaller for the specified type.
func NewTypedJSONMarshaller[T any]() TypedJSONMarshaller[T] {
	return TypedJSONMarshaller[T]{}
}

// Marshal serializes the typed data to JSON text.
func (m TypedJSONMarshaller[T]) Marshal(data T) ([]byte, error) {
	marshalled, err := json.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal deserializes JSON text into a typed object.
func (m TypedJSONMarshaller[T]) Unmarshal(data []byte) (T, error) {
	var out T

	if err := json.Unmarshal(data, &out); err != nil {
		return zero[T](), errUnmarshal(err)
	}

	return out, nil
}
