package arith

import (
	"math"
	mrand "math/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nat(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func TestIsCoprime(t *testing.T) {
	assert.True(t, IsCoprime(nat(9), nat(28)))
	assert.False(t, IsCoprime(nat(12), nat(18)))
	assert.True(t, IsCoprime(nat(1), nat(1)))
	assert.False(t, IsCoprime(nat(0), nat(15)))
}

func TestIsUnitModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11)
	assert.False(t, IsUnitModN(nat(0), n))
	assert.True(t, IsUnitModN(nat(1), n))
	assert.False(t, IsUnitModN(nat(3), n))
	assert.False(t, IsUnitModN(nat(22), n))
	assert.True(t, IsUnitModN(nat(32), n))
	assert.False(t, IsUnitModN(nat(34), n), "34 ⩾ n is not a reduced unit")
}

func TestLessThan(t *testing.T) {
	m := saferith.ModulusFromUint64(1001)
	assert.True(t, LessThan(nat(0), m))
	assert.True(t, LessThan(nat(1000), m))
	assert.False(t, LessThan(nat(1001), m))
	assert.False(t, LessThan(nat(1<<40), m))
}

func TestRoundedLog2(t *testing.T) {
	assert.Equal(t, 0, RoundedLog2(nat(0)))
	assert.Equal(t, 0, RoundedLog2(nat(1)))
	assert.Equal(t, 1, RoundedLog2(nat(2)))
	// log₂(3) ≈ 1.58
	assert.Equal(t, 2, RoundedLog2(nat(3)))
	// log₂(5) ≈ 2.32
	assert.Equal(t, 2, RoundedLog2(nat(5)))
	// log₂(6) ≈ 2.58
	assert.Equal(t, 3, RoundedLog2(nat(6)))

	r := mrand.New(mrand.NewSource(0))
	for i := 0; i < 1000; i++ {
		// stay far from the rounding boundary to avoid float64 noise
		x := uint64(r.Int63n(1<<52)) + 2
		want := math.Round(math.Log2(float64(x)))
		frac := math.Log2(float64(x)) - math.Floor(math.Log2(float64(x)))
		if math.Abs(frac-0.5) < 1e-9 {
			continue
		}
		require.Equal(t, int(want), RoundedLog2(nat(x)), "x = %d", x)
	}
}

func TestExactDiv(t *testing.T) {
	m := saferith.ModulusFromUint64(7)

	q, ok := ExactDiv(nat(91), m)
	require.True(t, ok)
	assert.Equal(t, uint64(13), q.Big().Uint64())

	_, ok = ExactDiv(nat(92), m)
	assert.False(t, ok)

	q, ok = ExactDiv(nat(0), m)
	require.True(t, ok)
	assert.Zero(t, q.Big().Sign())
}
