// Package marshaller converts typed objects to and from their stored
// byte form. It defines the marshalling interfaces the typed storage
// layer consumes and ships JSON, YAML, and msgpack implementations.
package marshaller

// Marshaller - serialization by default (JSON/YAML/msgpack/etc),
// implements one time for all objects.
// Required for the typed storage layer to set a marshalling format for
// any type of object and as recommendation for developers of store
// wrappers.
type Marshaller interface {
	Marshal(data any) ([]byte, error)
	Unmarshal(data []byte, out any) error
}

// Marshallable - custom object serialization, implements for each object.
// Objects implementing it carry their own wire format and bypass the
// configured Marshaller.
type Marshallable interface {
	Marshal() ([]byte, error)
	Unmarshal(data []byte) error
}

// TypedMarshaller is a generic interface for typed marshalling operations.
type TypedMarshaller[T any] interface {
	Marshal(data T) ([]byte, error)
	Unmarshal(data []byte) (T, error)
}

func zero[T any]() T {
	var out T
	return out
}
