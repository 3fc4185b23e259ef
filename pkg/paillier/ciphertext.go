package paillier

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/phe/pkg/hash"
)

// Ciphertext represents an integer of the form
//
//	ct = (1+N)ᵐρᴺ (mod N²),
//
// representing an encryption of m ∈ ℤₙ under a Paillier public key.
//
// Ciphertexts returned by a PublicKey remember the key that produced them,
// and are refused by any other key.
type Ciphertext struct {
	c *saferith.Nat
	// keyID identifies the producing key, empty when unknown
	keyID string
}

// NewCiphertext wraps c as a ciphertext. c is copied.
//
// The result is not bound to any key: its range is checked against a key once
// it is used, but a value from another key that happens to be in range cannot
// be told apart from a genuine one.
func NewCiphertext(c *saferith.Nat) *Ciphertext {
	if c == nil {
		return &Ciphertext{}
	}
	return &Ciphertext{c: new(saferith.Nat).SetNat(c)}
}

// Nat returns a copy of the underlying value.
func (ct *Ciphertext) Nat() *saferith.Nat {
	if ct == nil || ct.c == nil {
		return nil
	}
	return ct.c.Clone()
}

// Clone returns a deep copy of ct, still bound to the same key.
func (ct *Ciphertext) Clone() *Ciphertext {
	clone := NewCiphertext(ct.Nat())
	if ct != nil {
		clone.keyID = ct.keyID
	}
	return clone
}

// KeyFingerprint returns the fingerprint of the key that produced ct,
// or the empty string for a ciphertext built with NewCiphertext.
func (ct *Ciphertext) KeyFingerprint() string {
	if ct == nil || ct.keyID == "" {
		return ""
	}
	return ct.keyID[:fingerprintLength]
}

// Equal check whether ct ≡ other, as integers.
//
// Two encryptions of the same message under different nonces are not Equal.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct == nil || other == nil || ct.c == nil || other.c == nil {
		return false
	}
	return ct.c.Big().Cmp(other.c.Big()) == 0
}

// Add returns the homomorphic sum ct₁ ⊕ ct₂.
//
// ct = ct₁•ct₂ (mod N²), which decrypts to m₁ + m₂ (mod N).
func (pk *PublicKey) Add(ct1, ct2 *Ciphertext) (*Ciphertext, error) {
	if err := pk.ValidateCiphertext(ct1); err != nil {
		return nil, err
	}
	if err := pk.ValidateCiphertext(ct2); err != nil {
		return nil, err
	}
	return pk.ciphertext(new(saferith.Nat).ModMul(ct1.c, ct2.c, pk.nSquared)), nil
}

// AddConst adds the public constant k to the plaintext of ct.
// k may be any non-negative integer, it is reduced modulo N first.
//
// ct' = ct•gᵏ (mod N²), which decrypts to m + k (mod N).
func (pk *PublicKey) AddConst(ct *Ciphertext, k *saferith.Nat) (*Ciphertext, error) {
	if err := pk.ValidateCiphertext(ct); err != nil {
		return nil, err
	}
	kModN, err := pk.reduceConst(k)
	if err != nil {
		return nil, err
	}
	gk := new(saferith.Nat).Exp(pk.g, kModN, pk.nSquared)
	return pk.ciphertext(new(saferith.Nat).ModMul(ct.c, gk, pk.nSquared)), nil
}

// MulConst multiplies the plaintext of ct by the public constant k.
// k may be any non-negative integer, it is reduced modulo N first.
//
// ct' = ctᵏ (mod N²), which decrypts to m•k (mod N).
func (pk *PublicKey) MulConst(ct *Ciphertext, k *saferith.Nat) (*Ciphertext, error) {
	if err := pk.ValidateCiphertext(ct); err != nil {
		return nil, err
	}
	kModN, err := pk.reduceConst(k)
	if err != nil {
		return nil, err
	}
	return pk.ciphertext(new(saferith.Nat).Exp(ct.c, kModN, pk.nSquared)), nil
}

// reduceConst returns k (mod N).
func (pk *PublicKey) reduceConst(k *saferith.Nat) (*saferith.Nat, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: constant is nil", ErrRange)
	}
	return new(saferith.Nat).Mod(k, pk.n), nil
}

// Randomize multiplies ct by a fresh encryption of 0, returning an
// unlinkable ciphertext of the same message, and the nonce used.
//
// ct' = ct•ρᴺ (mod N²)
func (pk *PublicKey) Randomize(rand io.Reader, ct *Ciphertext, opts ...Option) (*Ciphertext, *saferith.Nat, error) {
	if err := pk.ValidateCiphertext(ct); err != nil {
		return nil, nil, err
	}
	nonce, err := pk.Nonce(rand, opts...)
	if err != nil {
		return nil, nil, err
	}
	rhoN := new(saferith.Nat).Exp(nonce, pk.nNat, pk.nSquared)
	return pk.ciphertext(new(saferith.Nat).ModMul(ct.c, rhoN, pk.nSquared)), nonce, nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	if ct == nil || ct.c == nil {
		return 0, io.ErrUnexpectedEOF
	}
	n, err := w.Write(ct.c.Big().Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Ciphertext) Domain() string {
	return "Paillier Ciphertext"
}

// Fingerprint returns a short identifier of the ciphertext, suitable for logs.
func (ct *Ciphertext) Fingerprint() string {
	h := hash.New()
	if err := h.WriteAny(ct); err != nil {
		return "<invalid>"
	}
	return fmt.Sprintf("%x", h.Sum())[:fingerprintLength]
}
