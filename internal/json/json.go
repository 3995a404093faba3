// Package json pins the JSON engine used across the module.
//
// The codec's fallback rules depend on engine behavior that must stay
// stable: standard-library float formatting, sorted map keys, and
// rejection of trailing garbage after a value. jsoniter configured for
// standard-library compatibility guarantees all three.
package json

import (
	jsoniter "github.com/json-iterator/go"
)

var cfg = jsoniter.ConfigCompatibleWithStandardLibrary

// Marshal encodes v as JSON text.
func Marshal(v any) ([]byte, error) {
	return cfg.Marshal(v)
}

// MarshalIndent encodes v as indented JSON text.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return cfg.MarshalIndent(v, prefix, indent)
}

// Unmarshal decodes JSON text into v.
func Unmarshal(data []byte, v any) error {
	return cfg.Unmarshal(data, v)
}

// Valid reports whether data is a complete JSON value.
func Valid(data []byte) bool {
	return cfg.Valid(data)
}
