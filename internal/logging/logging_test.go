package logging

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

func TestFormatNat(t *testing.T) {
	assert.Equal(t, "<nil>", FormatNat(nil))
	assert.Equal(t, "0", FormatNat(new(saferith.Nat).SetUint64(0)))
	assert.Equal(t, "2a", FormatNat(new(saferith.Nat).SetUint64(42)))
	assert.Equal(t, "89abcdef", FormatNat(new(saferith.Nat).SetUint64(0x0123456789abcdef)))
}
