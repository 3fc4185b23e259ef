package sample

import (
	"context"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/taurusgroup/phe/internal/logging"
)

// ErrPrimeBitLength is returned when asking for a prime of less than 2 bits.
var ErrPrimeBitLength = errors.New("sample: prime size must be at least 2 bits")

// Prime returns a random prime p with exactly bits bits.
//
// Each attempt forces the top bit, draws the lower bits-1 bits fresh from rand,
// and runs a probabilistic primality test with the given number of Miller-Rabin
// rounds followed by Baillie-PSW.
// A maxIterations of 0 keeps searching until a prime is found or ctx is done.
func Prime(ctx context.Context, rand io.Reader, bits, rounds, maxIterations int) (*saferith.Nat, error) {
	if bits < 2 {
		return nil, ErrPrimeBitLength
	}
	if rounds < 0 {
		return nil, errors.Errorf("sample: negative number of primality rounds %d", rounds)
	}

	lowBits := bits - 1
	buf := make([]byte, (lowBits+7)/8)
	mask := byte(0xFF) >> uint(len(buf)*8-lowBits)
	candidate := new(big.Int)
	for i := 0; withinBound(i, maxIterations); i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "sample: prime search interrupted after %d attempts", i)
		}
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		if len(buf) > 0 {
			buf[0] &= mask
		}
		candidate.SetBytes(buf)
		candidate.SetBit(candidate, lowBits, 1)
		if candidate.ProbablyPrime(rounds) {
			logging.Logger.Debugw("sampled prime", "bits", bits, "attempts", i+1)
			return new(saferith.Nat).SetBig(candidate, bits), nil
		}
	}
	return nil, errors.Wrapf(ErrMaxIterations, "Prime(%d bits) after %d attempts", bits, maxIterations)
}
