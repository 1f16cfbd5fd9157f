package kunjs

import "go.uber.org/zap"

// Config holds options for parsing and compiling.
type Config struct {
	// Filename is used in positions and error messages.
	Filename string

	// Logger receives Debug entries for sentinels produced while lowering.
	// If nil, logging is disabled.
	Logger *zap.Logger

	// Trace additionally logs every IR operation at Debug level.
	Trace bool
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// clone returns a copy of c with defaults applied. c may be nil.
func (c *Config) clone() *Config {
	cfg := &Config{}
	if c != nil {
		*cfg = *c
	}
	cfg.applyDefaults()
	return cfg
}
