package objmap

// Option controls a single ToTag, FromTag or Fill call.
type Option interface {
	apply(*config)
}

type config struct {
	// MaxDepth bounds recursion over the value graph / tag tree.
	// Zero or negative means unlimited.
	MaxDepth int
}

const defaultMaxDepth = 10000

func newConfig(opts []Option) *config {
	cfg := &config{MaxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

type maxDepthOption int

func (o maxDepthOption) apply(c *config) {
	c.MaxDepth = int(o)
}

// WithMaxDepth bounds the recursion depth of a conversion. Cyclic reference
// chains are caught by the visited-pointer check before the depth guard
// trips; the guard is a backstop for pathologically deep acyclic inputs.
func WithMaxDepth(n int) Option {
	return maxDepthOption(n)
}

func (c *config) depthExceeded(depth int) bool {
	return c.MaxDepth > 0 && depth > c.MaxDepth
}
