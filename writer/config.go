package writer

import (
	"runtime"

	"github.com/corewald/vach/crypto"
	"github.com/corewald/vach/flags"
	"github.com/corewald/vach/internal/options"
	"github.com/corewald/vach/section"
)

// Config controls one Dump call: the container's magic and global flag
// bits, an optional signing key, and the prepare stage's worker count.
//
// Config is built through functional options (options.Option[*Config]),
// the same pattern the teacher uses to configure its encoders
// (internal/options, mebo.NewNumericEncoder's variadic option args).
type Config struct {
	Magic      [section.MagicLength]byte
	UserFlags  flags.Flags
	Signer     *crypto.Signer
	NumWorkers int
}

// NewConfig returns a Config with vach's default magic and a worker
// count equal to GOMAXPROCS, then applies opts in order.
func NewConfig(opts ...options.Option[*Config]) (*Config, error) {
	cfg := &Config{
		Magic:      section.DefaultMagic,
		NumWorkers: runtime.GOMAXPROCS(0),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}

	return cfg, nil
}

// WithMagic overrides the container's 5-byte magic tag.
func WithMagic(magic [section.MagicLength]byte) options.Option[*Config] {
	return options.NoError(func(c *Config) {
		c.Magic = magic
	})
}

// WithFlags sets the caller-owned (free, lower 16 bits) global flag
// bits. Reserved bits passed here are masked off; the writer owns those.
func WithFlags(bits flags.Flags) options.Option[*Config] {
	return options.NoError(func(c *Config) {
		c.UserFlags = bits &^ flags.ReservedMask
	})
}

// WithSigner supplies the signing key. Its presence forces the header's
// SIGNED bit regardless of whether any individual leaf requests signing
// (spec.md §4.6, "Global flags"), and is required whenever any leaf
// requests encryption.
func WithSigner(s crypto.Signer) options.Option[*Config] {
	return options.NoError(func(c *Config) {
		c.Signer = &s
	})
}

// WithNumWorkers sets the prepare stage's worker-pool size. Values below
// 1 are clamped to 1 by NewConfig.
func WithNumWorkers(n int) options.Option[*Config] {
	return options.NoError(func(c *Config) {
		c.NumWorkers = n
	})
}
