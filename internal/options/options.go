// Package options implements the functional option pattern shared by the
// overlay and the drivers.
package options

// Defaults builds the initial value a set of callbacks is applied to.
type Defaults[T any] func() T

// OptionCallback mutates a configuration value in place.
type OptionCallback[T any] func(*T)

// Apply starts from defaults (the zero value when defaults is nil) and runs
// every callback in order, so later callbacks win.
func Apply[T any](defaults Defaults[T], cbs []OptionCallback[T]) T {
	var opts T

	if defaults != nil {
		opts = defaults()
	}

	for _, cb := range cbs {
		if cb != nil {
			cb(&opts)
		}
	}

	return opts
}
