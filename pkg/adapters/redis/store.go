package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/techseo/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "techseo:"

// Store implements ports.TokenStore and ports.StateStore on top of Redis.
type Store struct {
	client *backend.Client
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix (default DefaultPrefix).
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New connects to the Redis server at addr.
func New(addr string, opts ...Option) *Store {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient wraps an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client exposes the underlying client, e.g. to build a Locker on the same connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) tokenKey() string             { return s.prefix + "gsc:token" }
func (s *Store) siteKey() string              { return s.prefix + "gsc:site" }
func (s *Store) stateKey(state string) string { return s.prefix + "gsc:state:" + state }

// LoadToken reads the stored token.
func (s *Store) LoadToken(ctx context.Context) (*oauth2.Token, error) {
	data, err := s.client.Get(ctx, s.tokenKey()).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis load token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &token, nil
}

// SaveToken stores token as JSON without expiration.
func (s *Store) SaveToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return domain.ErrNilToken
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := s.client.Set(ctx, s.tokenKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis save token: %w", err)
	}
	return nil
}

// DeleteToken removes the token.
func (s *Store) DeleteToken(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey()).Err(); err != nil {
		return fmt.Errorf("redis delete token: %w", err)
	}
	return nil
}

// Site returns the selected property.
func (s *Store) Site(ctx context.Context) (string, error) {
	site, err := s.client.Get(ctx, s.siteKey()).Result()
	if errors.Is(err, backend.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis load site: %w", err)
	}
	return site, nil
}

// SetSite selects a property.
func (s *Store) SetSite(ctx context.Context, site string) error {
	if err := s.client.Set(ctx, s.siteKey(), site, 0).Err(); err != nil {
		return fmt.Errorf("redis save site: %w", err)
	}
	return nil
}

// Put stores state with a Redis TTL.
func (s *Store) Put(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.stateKey(state), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis put state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes state.
func (s *Store) Consume(ctx context.Context, state string) (bool, error) {
	_, err := s.client.GetDel(ctx, s.stateKey(state)).Result()
	if errors.Is(err, backend.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis consume state: %w", err)
	}
	return true, nil
}
