package paillier

import "errors"

var (
	// ErrKeyGeneration is returned when the sampled primes do not give a usable key,
	// i.e. when λ is not invertible modulo N.
	ErrKeyGeneration = errors.New("paillier: key generation failed")
	// ErrRange is returned when a plaintext is outside [0, N) or a ciphertext outside [0, N²).
	ErrRange = errors.New("paillier: value out of range")
	// ErrArithmetic is returned when decryption meets an inexact division,
	// which means the ciphertext is corrupted or was produced under another key.
	ErrArithmetic = errors.New("paillier: inexact division during decryption")
	// ErrInvalidBitLength is returned when the requested modulus size is too small.
	ErrInvalidBitLength = errors.New("paillier: invalid modulus bit length")
	// ErrInvalidModulus is returned when a public key is built from an unusable N.
	ErrInvalidModulus = errors.New("paillier: invalid modulus")
	// ErrKeyMismatch is returned when a public key does not belong to the secret key it is used with,
	// or when a ciphertext was produced under another key.
	ErrKeyMismatch = errors.New("paillier: key mismatch")
)
