package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/techseo/pkg/adapters/redis"
	"github.com/aretw0/techseo/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisTokenStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunTokenStoreContract(t, store)
}

func TestRedisStateStore_Contract(t *testing.T) {
	_, store := setup(t)
	ports.RunStateStoreContract(t, store)
}

func TestRedisStateStore_TTL(t *testing.T) {
	mr, store := setup(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc", 10*time.Minute))
	assert.True(t, mr.Exists("techseo:gsc:state:abc"))

	mr.FastForward(11 * time.Minute)

	ok, err := store.Consume(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, store := setup(t, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.SaveToken(ctx, &oauth2.Token{AccessToken: "a"}))
	require.NoError(t, store.SetSite(ctx, "https://e.co/"))

	assert.True(t, mr.Exists("custom:app:gsc:token"))
	site, err := mr.Get("custom:app:gsc:site")
	require.NoError(t, err)
	assert.Equal(t, "https://e.co/", site)
}

func TestRedisStore_CorruptToken(t *testing.T) {
	mr, store := setup(t)
	require.NoError(t, mr.Set("techseo:gsc:token", "{not json"))

	_, err := store.LoadToken(context.Background())
	assert.Error(t, err)
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr, store := setup(t)
	mr.Close()

	err := store.Ping(context.Background())
	assert.Error(t, err)
}
