package ports

import (
	"context"
	"time"

	"github.com/aretw0/techseo/pkg/domain"
	"golang.org/x/oauth2"
)

// PostRepository provides read access to posts.
type PostRepository interface {
	// Get returns the post with the given ID.
	// Returns domain.ErrPostNotFound if no such post exists.
	Get(ctx context.Context, id int64) (*domain.Post, error)

	// List returns every post known to the repository, ordered by ID.
	List(ctx context.Context) ([]*domain.Post, error)
}

// TokenStore persists the Search Console credentials of a site.
type TokenStore interface {
	// LoadToken returns the stored token.
	// Returns domain.ErrTokenNotFound when nothing was saved.
	LoadToken(ctx context.Context) (*oauth2.Token, error)

	// SaveToken replaces the stored token.
	// Returns domain.ErrNilToken for a nil token.
	SaveToken(ctx context.Context, token *oauth2.Token) error

	// DeleteToken removes the stored token. Deleting a missing token is not an error.
	DeleteToken(ctx context.Context) error

	// Site returns the selected Search Console property, or "" when none is selected.
	Site(ctx context.Context) (string, error)

	// SetSite selects the Search Console property.
	SetSite(ctx context.Context, site string) error
}

// StateStore keeps OAuth state values between the redirect and the callback.
type StateStore interface {
	// Put stores state for at most ttl.
	Put(ctx context.Context, state string, ttl time.Duration) error

	// Consume reports whether state was stored and not yet expired, and removes it.
	// A second Consume of the same value reports false.
	Consume(ctx context.Context, state string) (bool, error)
}
