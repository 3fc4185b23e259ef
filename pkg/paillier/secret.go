package paillier

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/phe/internal/logging"
	"github.com/taurusgroup/phe/pkg/math/arith"
)

// SecretKey is the secret key corresponding to a Public Paillier Key.
//
// A public key is a modulus N, and the secret key contains the information
// needed to invert the encryption: λ and μ = λ⁻¹ (mod N).
// The prime factors of N are not retained.
type SecretKey struct {
	*PublicKey
	// lambda = (p-1)(q-1), or p(p-1) when p = q
	lambda *saferith.Nat
	// mu = λ⁻¹ (mod N)
	mu *saferith.Nat
	// nInvLambda = N⁻¹ (mod λ), used to recover encryption nonces
	nInvLambda *saferith.Nat
}

// NewSecretKeyFromPrimes returns a new SecretKey by computing the different
// values from the primes p and q.
//
// p and q are not checked for primality. The only failure is a λ which has no
// inverse modulo N, reported as ErrKeyGeneration.
func NewSecretKeyFromPrimes(p, q *saferith.Nat) (*SecretKey, error) {
	if p == nil || q == nil {
		return nil, fmt.Errorf("%w: missing prime factor", ErrKeyGeneration)
	}
	pBig, qBig := p.Big(), q.Big()
	two := big.NewInt(2)
	if pBig.Cmp(two) < 0 || qBig.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: prime factors must be at least 2", ErrKeyGeneration)
	}

	nBig := new(big.Int).Mul(pBig, qBig)
	if nBig.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: modulus is even", ErrKeyGeneration)
	}
	pk, err := NewPublicKey(new(saferith.Nat).SetBig(nBig, nBig.BitLen()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	pMinus1 := new(big.Int).Sub(pBig, big.NewInt(1))
	qMinus1 := new(big.Int).Sub(qBig, big.NewInt(1))
	var lambdaBig big.Int
	if pBig.Cmp(qBig) == 0 {
		// λ = p(p-1)
		lambdaBig.Mul(pBig, pMinus1)
	} else {
		// λ = (p-1)(q-1)
		lambdaBig.Mul(pMinus1, qMinus1)
	}
	lambda := new(saferith.Nat).SetBig(&lambdaBig, lambdaBig.BitLen())

	if !arith.IsCoprime(lambda, pk.nNat) {
		return nil, fmt.Errorf("%w: λ is not invertible modulo N", ErrKeyGeneration)
	}

	// μ = λ⁻¹ (mod N)
	lambdaModN := new(saferith.Nat).Mod(lambda, pk.n)
	mu := new(saferith.Nat).ModInverse(lambdaModN, pk.n)

	// N⁻¹ (mod λ); λ is even so saferith's inversion does not apply
	nInvLambdaBig := new(big.Int).ModInverse(nBig, &lambdaBig)
	var nInvLambda *saferith.Nat
	if nInvLambdaBig != nil {
		nInvLambda = new(saferith.Nat).SetBig(nInvLambdaBig, lambdaBig.BitLen())
	}

	return &SecretKey{
		PublicKey:  pk,
		lambda:     lambda,
		mu:         mu,
		nInvLambda: nInvLambda,
	}, nil
}

// Lambda returns a copy of λ.
func (sk *SecretKey) Lambda() *saferith.Nat {
	return sk.lambda.Clone()
}

// Mu returns a copy of μ = λ⁻¹ (mod N).
func (sk *SecretKey) Mu() *saferith.Nat {
	return sk.mu.Clone()
}

// Dec decrypts ct with the SecretKey, returning m ∈ [0, N).
//
// m = L(ct^λ (mod N²))•μ (mod N), with L(u) = (u-1)/N.
//
// A ciphertext outside [0, N²) is rejected with ErrRange. When the division
// by N leaves a remainder, ct was not produced under this key and ErrArithmetic
// is returned.
func (sk *SecretKey) Dec(ct *Ciphertext) (*saferith.Nat, error) {
	if err := sk.ValidateCiphertext(ct); err != nil {
		return nil, err
	}

	// u = ct^λ (mod N²)
	u := new(saferith.Nat).Exp(ct.c, sk.lambda, sk.nSquared)
	if u.EqZero() == 1 {
		logging.Logger.Debugw("paillier: decryption failed", "ciphertext", ct.Fingerprint(), "reason", "zero")
		return nil, fmt.Errorf("%w: ciphertext is not a unit modulo N²", ErrArithmetic)
	}
	// u - 1
	u.Sub(u, oneNat, -1)

	// L = (u-1)/N
	l, ok := arith.ExactDiv(u, sk.n)
	if !ok {
		logging.Logger.Debugw("paillier: decryption failed", "ciphertext", ct.Fingerprint(), "reason", "inexact division")
		return nil, fmt.Errorf("%w: (c^λ mod N² - 1) is not divisible by N", ErrArithmetic)
	}

	// m = L•μ (mod N)
	return new(saferith.Nat).ModMul(l, sk.mu, sk.n), nil
}

// DecWithRandomness returns the underlying plaintext, as well as the nonce ρ used in encryption.
//
// ρ = (ct mod N)^(N⁻¹ mod λ) (mod N)
func (sk *SecretKey) DecWithRandomness(ct *Ciphertext) (*saferith.Nat, *saferith.Nat, error) {
	m, err := sk.Dec(ct)
	if err != nil {
		return nil, nil, err
	}
	if sk.nInvLambda == nil {
		return nil, nil, fmt.Errorf("%w: N is not invertible modulo λ", ErrArithmetic)
	}
	x := new(saferith.Nat).Mod(ct.c, sk.n)
	nonce := new(saferith.Nat).Exp(x, sk.nInvLambda, sk.n)
	return m, nonce, nil
}

// Decrypt decrypts ct with sk, after checking that pk is the public key sk was derived with.
func Decrypt(sk *SecretKey, pk *PublicKey, ct *Ciphertext) (*saferith.Nat, error) {
	if sk == nil {
		return nil, fmt.Errorf("%w: secret key is nil", ErrKeyMismatch)
	}
	if !sk.PublicKey.Equal(pk) {
		return nil, ErrKeyMismatch
	}
	return sk.Dec(ct)
}
