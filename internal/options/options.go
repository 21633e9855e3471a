// Package options provides the generic functional-option plumbing shared by
// the analysis packages. Options either always succeed (NoError) or validate
// their value on application (New), in which case Apply stops at the first
// failing option and returns its error.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func wraps a plain function as an Option for type T.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its value.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies the options to target in order, returning the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
