package paillier

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/phe/internal/logging"
	"github.com/taurusgroup/phe/internal/params"
	"github.com/taurusgroup/phe/pkg/math/sample"
	"github.com/taurusgroup/phe/pkg/pool"
)

// KeyGen generates a new key pair whose modulus N = p⋅q is the product of two
// independent primes of bits/2 bits each.
//
// The primes are not forced to be distinct. When they collide, or more generally
// when λ is not invertible modulo N, ErrKeyGeneration is returned and the caller
// may try again.
//
// The search for primes stops when ctx is done, or after the iteration bound
// given by WithMaxIterations.
func KeyGen(ctx context.Context, rand io.Reader, bits int, opts ...Option) (*PublicKey, *SecretKey, error) {
	if bits < params.MinBitsPaillier {
		return nil, nil, fmt.Errorf("%w: %d < %d", ErrInvalidBitLength, bits, params.MinBitsPaillier)
	}
	cfg := newConfig(opts)
	start := time.Now()

	if cfg.pool != nil {
		rand = pool.NewLockedReader(rand)
	}
	primes, err := cfg.pool.Parallelize(ctx, 2, func(ctx context.Context, _ int) (interface{}, error) {
		return sample.Prime(ctx, rand, bits/2, cfg.primalityRounds, cfg.maxIterations)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("paillier: generate primes: %w", err)
	}
	p, q := primes[0].(*saferith.Nat), primes[1].(*saferith.Nat)

	sk, err := NewSecretKeyFromPrimes(p, q)
	if err != nil {
		logging.Logger.Debugw("paillier: rejected prime pair", "bits", bits, "error", err)
		return nil, nil, err
	}

	logging.Logger.Infow("paillier: generated key pair",
		"bits", sk.Bits(),
		"fingerprint", sk.Fingerprint(),
		"workers", cfg.pool.Workers(),
		"elapsed", time.Since(start),
	)
	return sk.PublicKey, sk, nil
}
