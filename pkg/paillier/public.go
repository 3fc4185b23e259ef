package paillier

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/phe/pkg/hash"
	"github.com/taurusgroup/phe/pkg/math/arith"
	"github.com/taurusgroup/phe/pkg/math/sample"
)

var oneNat = new(saferith.Nat).SetUint64(1)

// PublicKey is a Paillier public key.
//
// It is immutable once constructed, and safe for concurrent use.
type PublicKey struct {
	// n = p⋅q
	n *saferith.Modulus
	// nSquared = n²
	nSquared *saferith.Modulus

	// These values are cached out of convenience, and performance
	nNat *saferith.Nat
	// g = n + 1
	g *saferith.Nat
	// bits = round(log₂(n))
	bits int
	// id = H(n), carried by every ciphertext this key produces
	id string
}

// ValidateN checks that n can serve as a Paillier modulus: it must be odd and larger than 1.
func ValidateN(n *saferith.Nat) error {
	if n == nil {
		return fmt.Errorf("%w: modulus is nil", ErrInvalidModulus)
	}
	nBig := n.Big()
	if nBig.Cmp(big.NewInt(1)) <= 0 {
		return fmt.Errorf("%w: modulus must be larger than 1", ErrInvalidModulus)
	}
	if nBig.Bit(0) == 0 {
		return fmt.Errorf("%w: modulus is even", ErrInvalidModulus)
	}
	return nil
}

// NewPublicKey returns the public key with modulus n, along with N², g = N+1
// and the rounded bit length of N.
func NewPublicKey(n *saferith.Nat) (*PublicKey, error) {
	if err := ValidateN(n); err != nil {
		return nil, err
	}
	nNat := new(saferith.Nat).SetNat(n)
	nNat.Resize(nNat.TrueLen())

	nSquared := new(saferith.Nat).Mul(nNat, nNat, -1)

	g := new(saferith.Nat).Add(nNat, oneNat, -1)
	// Tightening is fine, since n is public
	g.Resize(g.TrueLen())

	nMod := saferith.ModulusFromNat(nNat)
	return &PublicKey{
		n:        nMod,
		nSquared: saferith.ModulusFromNat(nSquared),
		nNat:     nNat,
		g:        g,
		bits:     arith.RoundedLog2(nNat),
		id:       fmt.Sprintf("%x", hash.New(publicKeyDomain, nMod).Sum()),
	}, nil
}

// N returns the modulus N of the public key.
func (pk *PublicKey) N() *saferith.Modulus {
	return pk.n
}

// N2 returns the modulus N² of the ciphertext space.
func (pk *PublicKey) N2() *saferith.Modulus {
	return pk.nSquared
}

// G returns a copy of the generator g = N+1.
func (pk *PublicKey) G() *saferith.Nat {
	return pk.g.Clone()
}

// Bits returns log₂(N), rounded to the nearest integer.
func (pk *PublicKey) Bits() int {
	return pk.bits
}

// Equal returns true if pk = other.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.nNat.Big().Cmp(other.nNat.Big()) == 0
}

// ValidatePlaintext returns an ErrRange error unless 0 ⩽ m < N.
func (pk *PublicKey) ValidatePlaintext(m *saferith.Nat) error {
	if m == nil {
		return fmt.Errorf("%w: plaintext is nil", ErrRange)
	}
	if !arith.LessThan(m, pk.n) {
		return fmt.Errorf("%w: plaintext must lie in [0, N)", ErrRange)
	}
	return nil
}

// ValidateCiphertext returns an ErrRange error unless 0 ⩽ c < N².
//
// A ciphertext produced by another key is rejected with an error matching both
// ErrArithmetic and ErrKeyMismatch. Ciphertexts built with NewCiphertext carry
// no key and only go through the range check.
func (pk *PublicKey) ValidateCiphertext(ct *Ciphertext) error {
	if ct == nil || ct.c == nil {
		return fmt.Errorf("%w: ciphertext is nil", ErrRange)
	}
	if ct.keyID != "" && ct.keyID != pk.id {
		return fmt.Errorf("%w: %w: ciphertext was produced under key %s", ErrArithmetic, ErrKeyMismatch, ct.KeyFingerprint())
	}
	if !arith.LessThan(ct.c, pk.nSquared) {
		return fmt.Errorf("%w: ciphertext must lie in [0, N²)", ErrRange)
	}
	return nil
}

// ciphertext wraps a value computed under pk, tagging it with the key.
func (pk *PublicKey) ciphertext(c *saferith.Nat) *Ciphertext {
	return &Ciphertext{c: c, keyID: pk.id}
}

// NewPlaintext converts m to a plaintext for this key.
// Negative values and values ⩾ N are rejected with ErrRange.
func (pk *PublicKey) NewPlaintext(m *big.Int) (*saferith.Nat, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: plaintext is nil", ErrRange)
	}
	if m.Sign() < 0 {
		return nil, fmt.Errorf("%w: plaintext is negative", ErrRange)
	}
	out := new(saferith.Nat).SetBig(m, m.BitLen())
	if err := pk.ValidatePlaintext(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Enc returns the encryption of m under the public key pk, with a fresh nonce
// ρ ∈ ℤₙˣ drawn from rand. The nonce is returned alongside the ciphertext.
//
// ct = gᵐρᴺ (mod N²)
func (pk *PublicKey) Enc(rand io.Reader, m *saferith.Nat, opts ...Option) (*Ciphertext, *saferith.Nat, error) {
	if err := pk.ValidatePlaintext(m); err != nil {
		return nil, nil, err
	}
	nonce, err := pk.Nonce(rand, opts...)
	if err != nil {
		return nil, nil, err
	}
	return pk.enc(m, nonce), nonce, nil
}

// EncWithNonce returns the encryption of m under the public key pk, using the given nonce.
// The nonce must be a unit modulo N.
//
// ct = gᵐρᴺ (mod N²)
func (pk *PublicKey) EncWithNonce(m, nonce *saferith.Nat) (*Ciphertext, error) {
	if err := pk.ValidatePlaintext(m); err != nil {
		return nil, err
	}
	if nonce == nil || !arith.IsUnitModN(nonce, pk.n) {
		return nil, fmt.Errorf("%w: nonce must be a unit modulo N", ErrRange)
	}
	return pk.enc(m, nonce), nil
}

// Nonce returns a suitable nonce ρ ∈ ℤₙˣ for encryption, sampled from rand.
func (pk *PublicKey) Nonce(rand io.Reader, opts ...Option) (*saferith.Nat, error) {
	cfg := newConfig(opts)
	nonce, err := sample.UnitModN(rand, pk.n, cfg.maxIterations)
	if err != nil {
		return nil, fmt.Errorf("paillier: sample nonce: %w", err)
	}
	return nonce, nil
}

func (pk *PublicKey) enc(m, nonce *saferith.Nat) *Ciphertext {
	// gᵐ (mod N²)
	gm := new(saferith.Nat).Exp(pk.g, m, pk.nSquared)
	// ρᴺ (mod N²)
	rhoN := new(saferith.Nat).Exp(nonce, pk.nNat, pk.nSquared)
	// gᵐρᴺ (mod N²)
	return pk.ciphertext(new(saferith.Nat).ModMul(gm, rhoN, pk.nSquared))
}

const publicKeyDomain = "Paillier PublicKey"

// fingerprintLength is the number of hex characters shown by Fingerprint.
const fingerprintLength = 16

// Fingerprint returns a short identifier of the key, suitable for logs.
func (pk *PublicKey) Fingerprint() string {
	return pk.id[:fingerprintLength]
}
