package builder

// Option customizes table-building strictness via the functional-options
// pattern.
type Option func(cfg *builderConfig)

type builderConfig struct {
	strictDuplicateNames bool
}

func newBuilderConfig(opts ...Option) *builderConfig {
	cfg := &builderConfig{strictDuplicateNames: false}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithStrictDuplicateNames makes a repeated basis name in one table an
// ErrMalformedSection instead of the default "later occurrence shadows
// earlier ones for name lookup, both entries still occupy their own
// basis slot" behavior.
func WithStrictDuplicateNames(strict bool) Option {
	return func(cfg *builderConfig) { cfg.strictDuplicateNames = strict }
}
