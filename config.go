package demangle

// Config holds the options that control how a Symbol renders. The zero
// value is the default configuration; use NewConfig and the With*
// methods to build a non-default one, mirroring wazero's functional
// RuntimeConfig pattern so callers chain options rather than poke at
// exported fields directly.
type Config struct {
	alternate bool
}

// NewConfig returns the default Config: full verbosity, no alternate
// (short) rendering.
func NewConfig() Config {
	return Config{}
}

// WithAlternate controls whether Symbol rendering uses Rust's "alternate"
// Display form: crate disambiguators and compiler-generated hashes are
// omitted, trading uniqueness for readability.
func (c Config) WithAlternate(alternate bool) Config {
	c.alternate = alternate
	return c
}
