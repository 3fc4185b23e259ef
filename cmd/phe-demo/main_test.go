package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/phe/pkg/paillier"
	"github.com/taurusgroup/phe/pkg/pool"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, 64, 10*time.Second, paillier.WithPool(pool.NewPool(2))))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "plaintext is 1212122147", lines[1])
	assert.Equal(t, "plaintext is 131211222", lines[3])
	assert.Equal(t, "plaintext is 131211222", lines[5])
	// 10010 * 121201212 is far below a 64-bit modulus
	assert.Equal(t, "plaintext is 1213224132120", lines[7])
}

func TestRunInvalidBits(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, 4, time.Second)
	assert.ErrorIs(t, err, paillier.ErrInvalidBitLength)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := generate(ctx, 64)
	assert.ErrorIs(t, err, context.Canceled)
}
