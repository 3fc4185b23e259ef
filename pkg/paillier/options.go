package paillier

import (
	"github.com/taurusgroup/phe/internal/params"
	"github.com/taurusgroup/phe/pkg/pool"
)

// Option configures key generation, encryption and batch operations.
type Option func(*config)

type config struct {
	maxIterations   int
	primalityRounds int
	pool            *pool.Pool
}

func newConfig(opts []Option) *config {
	c := &config{
		maxIterations:   params.Unbounded,
		primalityRounds: params.PrimalityRounds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMaxIterations bounds the rejection sampling loops used to find primes and
// encryption nonces. Each loop fails with sample.ErrMaxIterations after n attempts.
//
// n <= 0 keeps the loops unbounded, which is the default.
func WithMaxIterations(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = params.Unbounded
		}
		c.maxIterations = n
	}
}

// WithPrimalityRounds sets the number of Miller-Rabin rounds run on each prime candidate.
func WithPrimalityRounds(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.primalityRounds = n
		}
	}
}

// WithPool runs key generation and batch operations on the given pool.
//
// Without a pool, the work is done on the calling goroutine, and a seeded
// randomness source yields reproducible keys.
func WithPool(pl *pool.Pool) Option {
	return func(c *config) {
		c.pool = pl
	}
}
