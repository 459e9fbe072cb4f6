package memory

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/techseo/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_Contract(t *testing.T) {
	ports.RunTokenStoreContract(t, NewTokenStore())
}

func TestStateStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, NewStateStore())
}

func TestStateStore_Expiry(t *testing.T) {
	store := NewStateStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", 10*time.Minute))
	require.NoError(t, store.Put(ctx, "s2", 10*time.Minute))

	now = now.Add(11 * time.Minute)
	ok, err := store.Consume(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "expired state must be rejected")

	// Put sweeps expired entries.
	require.NoError(t, store.Put(ctx, "s3", time.Minute))
	assert.NotContains(t, store.data, "s2")
	assert.Contains(t, store.data, "s3")
}
