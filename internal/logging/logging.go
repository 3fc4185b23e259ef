package logging

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/ipfs/go-log"
)

// Logger is the logger shared by every package of the module.
//
// Its level can be changed at runtime with log.SetLogLevel("phe", "debug").
var Logger = log.Logger("phe")

var low32 = new(big.Int).SetUint64(0xFFFFFFFF)

// FormatNat returns the lowest 32 bits of a in hex.
// It is only meant to identify public values in log lines.
func FormatNat(a *saferith.Nat) string {
	if a == nil {
		return "<nil>"
	}
	return new(big.Int).And(a.Big(), low32).Text(16)
}
