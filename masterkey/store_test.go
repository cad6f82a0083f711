package masterkey_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/entropy"
	"github.com/memparanoid/redoubt/masterkey"
)

const concurrentReaders = 300

func TestStdStoreConcurrentLeaksAgree(t *testing.T) {
	store := masterkey.NewStdStore(entropy.System{})
	testConcurrentLeaksAgree(t, store)
}

func TestPortableStoreConcurrentLeaksAgree(t *testing.T) {
	store := masterkey.NewPortableStore(entropy.System{})
	testConcurrentLeaksAgree(t, store)
}

func testConcurrentLeaksAgree(t *testing.T, store masterkey.Store) {
	t.Helper()

	results := make([][]byte, concurrentReaders)
	var wg sync.WaitGroup
	wg.Add(concurrentReaders)

	for i := 0; i < concurrentReaders; i++ {
		go func(idx int) {
			defer wg.Done()
			key, err := store.Leak(32)
			require.NoError(t, err)
			results[idx] = key
		}(i)
	}
	wg.Wait()

	first := results[0]
	require.Len(t, first, 32)
	for i, key := range results {
		require.Equalf(t, first, key, "goroutine %d observed a different key", i)
	}
}

func TestStdStoreResetForcesRegeneration(t *testing.T) {
	store := masterkey.NewStdStore(entropy.System{})
	key1, err := store.Leak(32)
	require.NoError(t, err)

	store.Reset()

	key2, err := store.Leak(32)
	require.NoError(t, err)

	// A fresh entropy draw should, overwhelmingly, differ from the first.
	require.NotEqual(t, key1, key2)
}
