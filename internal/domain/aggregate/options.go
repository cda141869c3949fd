package aggregate

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithEager computes the win counts during New instead of on first read.
func WithEager() Option {
	return func(a *Aggregator) {
		a.eager = true
	}
}
