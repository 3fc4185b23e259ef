package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

var one = big.NewInt(1)

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *saferith.Nat) bool {
	var gcd big.Int
	return gcd.GCD(nil, nil, a.Big(), b.Big()).Cmp(one) == 0
}

// IsUnitModN returns true if x ∈ ℤₙˣ, i.e. 1 ⩽ x < n and gcd(x, n) = 1.
func IsUnitModN(x *saferith.Nat, n *saferith.Modulus) bool {
	if x.EqZero() == 1 {
		return false
	}
	if _, _, lt := x.CmpMod(n); lt != 1 {
		return false
	}
	return IsCoprime(x, n.Nat())
}

// LessThan returns true if 0 ⩽ x < m.
func LessThan(x *saferith.Nat, m *saferith.Modulus) bool {
	_, _, lt := x.CmpMod(m)
	return lt == 1
}

// RoundedLog2 returns log₂(n) rounded to the nearest integer.
//
// With b = BitLen(n) we have 2ᵇ⁻¹ ⩽ n < 2ᵇ, and log₂(n) rounds up to b
// exactly when n ⩾ 2ᵇ⁻¹ᐟ², that is when n² ⩾ 2²ᵇ⁻¹.
// The comparison is done on integers, so no precision is lost for large n.
func RoundedLog2(n *saferith.Nat) int {
	nBig := n.Big()
	b := nBig.BitLen()
	if b == 0 {
		return 0
	}
	nSquared := new(big.Int).Mul(nBig, nBig)
	threshold := new(big.Int).Lsh(one, uint(2*b-1))
	if nSquared.Cmp(threshold) >= 0 {
		return b
	}
	return b - 1
}

// ExactDiv returns x / m, and whether the division left no remainder.
func ExactDiv(x *saferith.Nat, m *saferith.Modulus) (*saferith.Nat, bool) {
	remainder := new(saferith.Nat).Mod(x, m)
	if remainder.EqZero() != 1 {
		return nil, false
	}
	return new(saferith.Nat).Div(x, m, -1), true
}
