package paillier

import (
	"context"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/hashicorp/go-multierror"
	"github.com/taurusgroup/phe/internal/logging"
	"github.com/taurusgroup/phe/pkg/pool"
)

// EncBatch encrypts every plaintext in ms, each with its own fresh nonce.
//
// All plaintexts are checked before any encryption starts, and every
// out of range value is reported in the returned error.
// With WithPool, the encryptions run concurrently and rand is locked.
func (pk *PublicKey) EncBatch(ctx context.Context, rand io.Reader, ms []*saferith.Nat, opts ...Option) ([]*Ciphertext, error) {
	var errs *multierror.Error
	for i, m := range ms {
		if err := pk.ValidatePlaintext(m); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("plaintext %d: %w", i, err))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	if cfg.pool != nil {
		rand = pool.NewLockedReader(rand)
	}
	results, err := cfg.pool.Parallelize(ctx, len(ms), func(_ context.Context, i int) (interface{}, error) {
		ct, _, err := pk.Enc(rand, ms[i], opts...)
		return ct, err
	})
	if err != nil {
		return nil, err
	}

	cts := make([]*Ciphertext, len(ms))
	for i, r := range results {
		cts[i] = r.(*Ciphertext)
	}
	return cts, nil
}

// DecBatch decrypts every ciphertext in cts.
//
// Failures do not stop the batch: the plaintext at the index of a failing
// ciphertext is nil, and all failures are combined in the returned error.
func (sk *SecretKey) DecBatch(ctx context.Context, cts []*Ciphertext, opts ...Option) ([]*saferith.Nat, error) {
	cfg := newConfig(opts)
	ms := make([]*saferith.Nat, len(cts))
	failures := make([]error, len(cts))
	_, err := cfg.pool.Parallelize(ctx, len(cts), func(_ context.Context, i int) (interface{}, error) {
		// each index is written by exactly one call
		ms[i], failures[i] = sk.Dec(cts[i])
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	for i, failure := range failures {
		if failure != nil {
			errs = multierror.Append(errs, fmt.Errorf("ciphertext %d: %w", i, failure))
		}
	}
	if errs != nil {
		logging.Logger.Debugw("paillier: batch decryption", "total", len(cts), "failed", len(errs.Errors))
	}
	return ms, errs.ErrorOrNil()
}
