package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/techseo/pkg/domain"
	"golang.org/x/oauth2"
)

// TokenStore implements ports.TokenStore in memory.
// Safe for concurrent use.
type TokenStore struct {
	token *oauth2.Token
	site  string
	mu    sync.RWMutex
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// LoadToken returns a copy of the stored token.
func (s *TokenStore) LoadToken(ctx context.Context) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, domain.ErrTokenNotFound
	}
	t := *s.token
	return &t, nil
}

// SaveToken stores a copy of token.
func (s *TokenStore) SaveToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return domain.ErrNilToken
	}
	t := *token
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = &t
	return nil
}

// DeleteToken forgets the token.
func (s *TokenStore) DeleteToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}

// Site returns the selected property.
func (s *TokenStore) Site(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site, nil
}

// SetSite selects a property.
func (s *TokenStore) SetSite(ctx context.Context, site string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.site = site
	return nil
}

// StateStore implements ports.StateStore in memory.
// Expired entries are dropped lazily on access.
type StateStore struct {
	data map[string]time.Time
	now  func() time.Time
	mu   sync.Mutex
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Put stores state until ttl elapses.
func (s *StateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.data[state] = s.now().Add(ttl)
	return nil
}

// Consume removes state and reports whether it was still valid.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.data[state]
	if !ok {
		return false, nil
	}
	delete(s.data, state)
	return s.now().Before(expiry), nil
}

func (s *StateStore) sweep() {
	now := s.now()
	for k, expiry := range s.data {
		if !now.Before(expiry) {
			delete(s.data, k)
		}
	}
}
