package sample

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/taurusgroup/phe/internal/params"
	"github.com/taurusgroup/phe/pkg/hash"
	"github.com/taurusgroup/phe/pkg/math/arith"
)

// ErrMaxIterations is returned when a bounded rejection loop gives up.
var ErrMaxIterations = errors.New("sample: failed to generate within the iteration bound")

func readBits(rand io.Reader, buf []byte) error {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return errors.Wrap(err, "sample: failed to read randomness")
	}
	return nil
}

func withinBound(i, maxIterations int) bool {
	return maxIterations == params.Unbounded || i < maxIterations
}

// ModN samples an element of ℤₙ uniformly, by rejection.
//
// Candidates have exactly as many bits as n, so each draw succeeds with
// probability at least 1/2. A maxIterations of 0 never gives up.
func ModN(rand io.Reader, n *saferith.Modulus, maxIterations int) (*saferith.Nat, error) {
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	mask := byte(0xFF) >> uint(len(buf)*8-bits)
	out := new(saferith.Nat)
	for i := 0; withinBound(i, maxIterations); i++ {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if arith.LessThan(out, n) {
			return out, nil
		}
	}
	return nil, errors.Wrapf(ErrMaxIterations, "ModN after %d draws", maxIterations)
}

// UnitModN returns a u ∈ ℤₙˣ, resampling until gcd(u, n) = 1.
//
// A maxIterations of 0 never gives up.
func UnitModN(rand io.Reader, n *saferith.Modulus, maxIterations int) (*saferith.Nat, error) {
	for i := 0; withinBound(i, maxIterations); i++ {
		u, err := ModN(rand, n, maxIterations)
		if err != nil {
			return nil, err
		}
		if arith.IsUnitModN(u, n) {
			return u, nil
		}
	}
	return nil, errors.Wrapf(ErrMaxIterations, "UnitModN after %d draws", maxIterations)
}

// NewSeededReader returns an endless deterministic stream of bytes derived from seed.
//
// Two readers created with the same seed produce the same output, which makes
// key generation and encryption reproducible in tests.
// It must not be used to produce real keys.
func NewSeededReader(seed []byte) io.Reader {
	return hash.New(seed).Digest()
}
