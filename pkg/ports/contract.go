package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/techseo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// RunPostRepositoryContract verifies a PostRepository seeded with want.
func RunPostRepositoryContract(t *testing.T, repo PostRepository, want []*domain.Post) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		for _, p := range want {
			got, err := repo.Get(ctx, p.ID)
			require.NoError(t, err, "Get(%d)", p.ID)
			assert.Equal(t, p.ID, got.ID)
			assert.Equal(t, p.Title, got.Title)
			assert.Equal(t, p.Permalink, got.Permalink)
			assert.Equal(t, p.Enabled, got.Enabled)
			assert.Equal(t, p.Content, got.Content)
		}
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := repo.Get(ctx, -1)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("List", func(t *testing.T) {
		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, len(want))
		for i := 1; i < len(posts); i++ {
			assert.Less(t, posts[i-1].ID, posts[i].ID, "List must be ordered by ID")
		}
	})

	t.Run("Isolation", func(t *testing.T) {
		if len(want) == 0 {
			t.Skip("no posts")
		}
		got, err := repo.Get(ctx, want[0].ID)
		require.NoError(t, err)
		got.Title = "mutated"

		again, err := repo.Get(ctx, want[0].ID)
		require.NoError(t, err)
		assert.Equal(t, want[0].Title, again.Title)
	})
}

// RunTokenStoreContract verifies a TokenStore implementation. The store must start empty.
func RunTokenStoreContract(t *testing.T, store TokenStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		_, err := store.LoadToken(ctx)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)

		site, err := store.Site(ctx)
		require.NoError(t, err)
		assert.Empty(t, site)
	})

	t.Run("Save Nil", func(t *testing.T) {
		assert.ErrorIs(t, store.SaveToken(ctx, nil), domain.ErrNilToken)

		_, err := store.LoadToken(ctx)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound, "a rejected save stores nothing")
	})

	t.Run("Save and Load", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		token := &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			Expiry:       expiry,
		}
		require.NoError(t, store.SaveToken(ctx, token))

		loaded, err := store.LoadToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "access", loaded.AccessToken)
		assert.Equal(t, "refresh", loaded.RefreshToken)
		assert.Equal(t, "Bearer", loaded.TokenType)
		assert.True(t, expiry.Equal(loaded.Expiry), "expiry %v != %v", loaded.Expiry, expiry)
	})

	t.Run("Site", func(t *testing.T) {
		require.NoError(t, store.SetSite(ctx, "sc-domain:example.com"))
		site, err := store.Site(ctx)
		require.NoError(t, err)
		assert.Equal(t, "sc-domain:example.com", site)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.DeleteToken(ctx))
		_, err := store.LoadToken(ctx)
		assert.ErrorIs(t, err, domain.ErrTokenNotFound)

		require.NoError(t, store.DeleteToken(ctx), "deleting twice is not an error")
	})
}

// RunStateStoreContract verifies a StateStore implementation.
func RunStateStoreContract(t *testing.T, store StateStore) {
	t.Helper()
	ctx := context.Background()
	state := "contract-state-" + time.Now().Format("20060102150405")

	t.Run("Consume Once", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, state, time.Minute))

		ok, err := store.Consume(ctx, state)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Consume(ctx, state)
		require.NoError(t, err)
		assert.False(t, ok, "state must not be accepted twice")
	})

	t.Run("Consume Unknown", func(t *testing.T) {
		ok, err := store.Consume(ctx, "unknown-"+state)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Independent Values", func(t *testing.T) {
		a, b := state+"-a", state+"-b"
		require.NoError(t, store.Put(ctx, a, time.Minute))
		require.NoError(t, store.Put(ctx, b, time.Minute))

		ok, err := store.Consume(ctx, a)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Consume(ctx, b)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
