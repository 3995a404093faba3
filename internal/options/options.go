// Package options implements the generic functional-options helper the
// store and typed layers build their configuration surfaces on.
package options

// OptionConstructor builds the default option set an entry point starts
// from. A nil constructor starts from the zero value.
type OptionConstructor[T any] func() T

// OptionCallback mutates one option in an option set.
type OptionCallback[T any] func(*T)

// ApplyOptions builds the option set: defaults from the constructor,
// then every callback applied in order.
func ApplyOptions[T any](constructor OptionConstructor[T], cbs []OptionCallback[T]) T {
	var opts T

	if constructor != nil {
		opts = constructor()
	}

	for _, cb := range cbs {
		cb(&opts)
	}

	return opts
}
