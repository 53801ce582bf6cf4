package lang

import "github.com/ardnew/calc/log"

// DefaultMaxDepth is the default recursion limit of the parser.
// Zero disables the limit.
var DefaultMaxDepth = 0

// Option configures parsing behavior.
type Option func(*parser)

// WithMaxDepth bounds the recursion depth of the parser. Each grammar level
// entered (additive, multiplicative, base) counts once, so right-recursive
// chains such as "1+1+...+1" and deeply nested groups both consume depth.
// A depth of zero or less disables the limit.
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// applyOptions applies functional options to a parser.
func applyOptions(p *parser, opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}
