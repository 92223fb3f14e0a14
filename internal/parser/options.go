package parser

// Option tunes a single Parse call.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth rejects documents nested deeper than n groups, the root
// included. Zero or a negative n means no limit.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}
