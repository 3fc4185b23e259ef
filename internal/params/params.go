package params

const (
	SecParam = 128

	// BitsPaillier is the default bit length of a Paillier modulus N.
	BitsPaillier = 16 * SecParam // = 2048
	// BitsPrime is the default bit length of each prime factor of N.
	BitsPrime = BitsPaillier / 2 // = 1024

	// MinBitsPaillier is the smallest modulus we agree to generate.
	// Below this, both prime factors are so small that almost every draw
	// collides or shares a factor with the other's totient.
	MinBitsPaillier = 8

	// PrimalityRounds is the number of Miller-Rabin iterations used when checking primality.
	//
	// More iterations mean fewer false positives, but more expensive calculations.
	//
	// 20 is the same number that Go uses internally.
	PrimalityRounds = 20

	// Unbounded disables the iteration cap of rejection sampling loops.
	Unbounded = 0
)
