package marshaller

import (
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackMarshaller marshals objects as msgpack, the compact binary
// format the Tarantool backend speaks natively. Stored objects are not
// JSON, so the value codec reads them back as raw text.
type MsgpackMarshaller struct{}

var _ TypedMarshaller[struct{}] = TypedMsgpackMarshaller[struct{}]{}

// NewMsgpackMarshaller creates a new MsgpackMarshaller.
func NewMsgpackMarshaller() Marshaller {
	return MsgpackMarshaller{}
}

// Marshal serializes the data to msgpack bytes.
func (m MsgpackMarshaller) Marshal(data any) ([]byte, error) {
	marshalled, err := msgpack.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal deserializes msgpack bytes into out, which must be a pointer.
func (m MsgpackMarshaller) Unmarshal(data []byte, out any) error {
	if err := msgpack.Unmarshal(data, out); err != nil {
		return errUnmarshal(err)
	}

	return nil
}

// TypedMsgpackMarshaller is a generic msgpack marshaller for typed objects.
type TypedMsgpackMarshaller[T any] struct{}

// NewTypedMsgpackMarshaller creates a new TypedMsgpackMarshaller for the specified type.
func NewTypedMsgpackMarshaller[T any]() TypedMsgpackMarshaller[T] {
	return TypedMsgpackMarshaller[T]{}
}

// Marshal serializes the typed data to msgpack bytes.
func (m TypedMsgpackMarshaller[T]) Marshal(data T) ([]byte, error) {
	marshalled, err := msgpack.Marshal(data)
	if err != nil {
		return nil, errMarshal(err)
	}

	return marshalled, nil
}

// Unmarshal deserializes msgpack bytes into a typed object.
func (m TypedMsgpackMarshaller[T]) Unmarshal(data []byte) (T, error) {
	var out T

	if err := msgpack.Unmarshal(data, &out); err != nil {
		return zero[T](), errUnmarshal(err)
	}

	return out, nil
}
