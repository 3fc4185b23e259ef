package sample

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/otiai10/primes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/phe/internal/params"
	"github.com/taurusgroup/phe/pkg/math/arith"
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

type failingReader struct{}

var errNoEntropy = errors.New("no entropy")

func (failingReader) Read([]byte) (int, error) {
	return 0, errNoEntropy
}

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	x, err := ModN(rand.Reader, n, params.Unbounded)
	require.NoError(t, err)
	assert.True(t, arith.LessThan(x, n), "ModN generated a number >= %v: %v", n, x)
}

func TestModNCoversRange(t *testing.T) {
	const size = 7
	n := saferith.ModulusFromUint64(size)
	r := NewSeededReader([]byte("TestModNCoversRange"))
	seen := make(map[uint64]bool)
	for i := 0; i < 100*size; i++ {
		x, err := ModN(r, n, params.Unbounded)
		require.NoError(t, err)
		v := x.Big().Uint64()
		require.Less(t, v, uint64(size))
		seen[v] = true
	}
	assert.Len(t, seen, size, "every residue should eventually be drawn")
}

func TestUnitModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 5 * 7 * 11)
	for i := 0; i < 100; i++ {
		u, err := UnitModN(rand.Reader, n, params.Unbounded)
		require.NoError(t, err)
		require.True(t, arith.IsUnitModN(u, n), "%v is not a unit mod %v", u, n)
	}
}

func TestUnitModNMaxIterations(t *testing.T) {
	n := saferith.ModulusFromUint64(15)
	// zero is never a unit, so a zero reader can never succeed
	_, err := UnitModN(zeroReader{}, n, 10)
	assert.ErrorIs(t, err, ErrMaxIterations)
}

func TestSampleReadError(t *testing.T) {
	n := saferith.ModulusFromUint64(15)
	_, err := ModN(failingReader{}, n, params.Unbounded)
	assert.ErrorIs(t, err, errNoEntropy)
	_, err = UnitModN(failingReader{}, n, params.Unbounded)
	assert.ErrorIs(t, err, errNoEntropy)
}

func TestPrime(t *testing.T) {
	for _, bits := range []int{2, 3, 7, 8, 9, 31, 32, 33, 64, 256} {
		p, err := Prime(context.Background(), rand.Reader, bits, params.PrimalityRounds, params.Unbounded)
		require.NoError(t, err)
		pBig := p.Big()
		assert.Equal(t, bits, pBig.BitLen(), "prime has the wrong size")
		assert.True(t, pBig.ProbablyPrime(params.PrimalityRounds), "Prime generated a non prime number: %v", pBig)
	}
}

func TestPrimeSmallMatchesSieve(t *testing.T) {
	for bits := 2; bits <= 16; bits++ {
		known := make(map[uint64]bool)
		for _, p := range primes.Until(int64(1) << uint(bits)).List() {
			known[uint64(p)] = true
		}
		for i := 0; i < 20; i++ {
			p, err := Prime(context.Background(), rand.Reader, bits, params.PrimalityRounds, params.Unbounded)
			require.NoError(t, err)
			assert.True(t, known[p.Big().Uint64()], "%d is not a %d bit prime", p.Big().Uint64(), bits)
		}
	}
}

func TestPrimeDeterministic(t *testing.T) {
	seed := []byte("TestPrimeDeterministic")
	p1, err := Prime(context.Background(), NewSeededReader(seed), 128, params.PrimalityRounds, params.Unbounded)
	require.NoError(t, err)
	p2, err := Prime(context.Background(), NewSeededReader(seed), 128, params.PrimalityRounds, params.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, 0, p1.Big().Cmp(p2.Big()), "same seed should give the same prime")

	p3, err := Prime(context.Background(), NewSeededReader([]byte("other")), 128, params.PrimalityRounds, params.Unbounded)
	require.NoError(t, err)
	assert.NotEqual(t, 0, p1.Big().Cmp(p3.Big()))
}

func TestPrimeErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Prime(ctx, rand.Reader, 1, params.PrimalityRounds, params.Unbounded)
	assert.ErrorIs(t, err, ErrPrimeBitLength)

	_, err = Prime(ctx, rand.Reader, 32, -1, params.Unbounded)
	assert.Error(t, err)

	// with a zero reader the only candidate is 2¹⁵, which is not prime
	_, err = Prime(ctx, zeroReader{}, 16, params.PrimalityRounds, 50)
	assert.ErrorIs(t, err, ErrMaxIterations)

	_, err = Prime(ctx, failingReader{}, 16, params.PrimalityRounds, params.Unbounded)
	assert.ErrorIs(t, err, errNoEntropy)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Prime(cancelled, zeroReader{}, 16, params.PrimalityRounds, params.Unbounded)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSeededReader(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	_, err := io.ReadFull(NewSeededReader([]byte("x")), a)
	require.NoError(t, err)
	_, err = io.ReadFull(NewSeededReader([]byte("x")), b)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = io.ReadFull(NewSeededReader([]byte("y")), b)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var resultNat *saferith.Nat

func BenchmarkPrime(b *testing.B) {
	for i := 0; i < b.N; i++ {
		resultNat, _ = Prime(context.Background(), rand.Reader, params.BitsPrime, params.PrimalityRounds, params.Unbounded)
	}
}

func BenchmarkUnitModN(b *testing.B) {
	b.StopTimer()
	nBytes := make([]byte, (params.BitsPaillier+7)/8)
	_, _ = rand.Read(nBytes)
	nBytes[len(nBytes)-1] |= 1
	n := saferith.ModulusFromBytes(nBytes)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		resultNat, _ = UnitModN(rand.Reader, n, params.Unbounded)
	}
}
