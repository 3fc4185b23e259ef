package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cronokirby/saferith"
	"github.com/ipfs/go-log"
	"github.com/taurusgroup/phe/internal/logging"
	"github.com/taurusgroup/phe/internal/params"
	"github.com/taurusgroup/phe/pkg/paillier"
	"github.com/taurusgroup/phe/pkg/pool"
)

// keyGenAttempts is how many prime pairs are drawn before giving up on a key.
const keyGenAttempts = 10

func main() {
	bits := flag.Int("bits", 1024, "bit length of the Paillier modulus")
	timeout := flag.Duration("timeout", time.Minute, "maximum time spent generating the key pair")
	workers := flag.Int("workers", 0, "number of workers for key generation, 0 for one per CPU, -1 to stay sequential")
	maxIterations := flag.Int("max-iterations", params.Unbounded, "bound on prime sampling attempts, 0 for unbounded")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	if err := log.SetLogLevel("phe", *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}

	opts := []paillier.Option{paillier.WithMaxIterations(*maxIterations)}
	var pl *pool.Pool
	if *workers >= 0 {
		pl = pool.NewPool(*workers)
		opts = append(opts, paillier.WithPool(pl))
	}
	logging.Logger.Debugw("starting", "bits", *bits, "workers", pl.Workers(), "timeout", *timeout)

	if err := run(os.Stdout, *bits, *timeout, opts...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, bits int, timeout time.Duration, opts ...paillier.Option) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	pk, sk, err := generate(ctx, bits, opts...)
	if err != nil {
		return err
	}
	logging.Logger.Infow("using key", "n", logging.FormatNat(pk.N().Nat()), "bits", pk.Bits())

	fmt.Fprintln(w, "test basic encryption of 1212122147")
	ct, err := encrypt(pk, 1212122147)
	if err != nil {
		return err
	}
	if err = printDecryption(w, sk, ct); err != nil {
		return err
	}

	fmt.Fprintln(w, "test addition of 10010 and 121201212")
	ct1, err := encrypt(pk, 10010)
	if err != nil {
		return err
	}
	ct2, err := encrypt(pk, 121201212)
	if err != nil {
		return err
	}
	sum, err := pk.Add(ct1, ct2)
	if err != nil {
		return err
	}
	if err = printDecryption(w, sk, sum); err != nil {
		return err
	}

	k := new(saferith.Nat).SetUint64(121201212)

	fmt.Fprintln(w, "test addition of ciphertext 10010 and plaintext 121201212")
	shifted, err := pk.AddConst(ct1, k)
	if err != nil {
		return err
	}
	if err = printDecryption(w, sk, shifted); err != nil {
		return err
	}

	fmt.Fprintln(w, "test multiplication of ciphertext 10010 and plaintext 121201212")
	scaled, err := pk.MulConst(ct1, k)
	if err != nil {
		return err
	}
	return printDecryption(w, sk, scaled)
}

// generate draws prime pairs until one gives a usable key.
func generate(ctx context.Context, bits int, opts ...paillier.Option) (*paillier.PublicKey, *paillier.SecretKey, error) {
	var err error
	for i := 0; i < keyGenAttempts; i++ {
		var (
			pk *paillier.PublicKey
			sk *paillier.SecretKey
		)
		pk, sk, err = paillier.KeyGen(ctx, rand.Reader, bits, opts...)
		if err == nil {
			return pk, sk, nil
		}
		if !errors.Is(err, paillier.ErrKeyGeneration) {
			return nil, nil, err
		}
	}
	return nil, nil, fmt.Errorf("no usable key after %d attempts: %w", keyGenAttempts, err)
}

func encrypt(pk *paillier.PublicKey, m uint64) (*paillier.Ciphertext, error) {
	ct, _, err := pk.Enc(rand.Reader, new(saferith.Nat).SetUint64(m))
	return ct, err
}

func printDecryption(w io.Writer, sk *paillier.SecretKey, ct *paillier.Ciphertext) error {
	m, err := sk.Dec(ct)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "plaintext is", m.Big())
	return nil
}
