package nonce_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/entropy"
	"github.com/memparanoid/redoubt/nonce"
)

func TestSessionGeneratorProducesCorrectSize(t *testing.T) {
	gen, err := nonce.NewSessionGenerator(entropy.System{}, 24)
	require.NoError(t, err)

	n, err := gen.Next()
	require.NoError(t, err)
	require.Len(t, n, 24)
}

func TestSessionGeneratorNeverRepeatsWithinProcess(t *testing.T) {
	gen, err := nonce.NewSessionGenerator(entropy.System{}, 12)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n, err := gen.Next()
		require.NoError(t, err)
		key := string(n)
		require.Falsef(t, seen[key], "nonce repeated at iteration %d", i)
		seen[key] = true
	}
}

func TestSessionGeneratorDiffersAcrossInstances(t *testing.T) {
	genA, err := nonce.NewSessionGenerator(entropy.System{}, 12)
	require.NoError(t, err)
	genB, err := nonce.NewSessionGenerator(entropy.System{}, 12)
	require.NoError(t, err)

	a, err := genA.Next()
	require.NoError(t, err)
	b, err := genB.Next()
	require.NoError(t, err)

	require.NotEqual(t, a, b, "independent sessions draw independent salts")
}
