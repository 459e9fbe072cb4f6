package gsc

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/techseo/internal/logging"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/aretw0/techseo/pkg/ports"
	"golang.org/x/oauth2"
)

const (
	// StateTTL bounds the time between ConnectURL and Callback.
	StateTTL = 10 * time.Minute

	// StateLength is the number of characters of a generated state.
	StateLength = 24

	// ExpiryMargin is how long before expiry a token is refreshed.
	ExpiryMargin = 60 * time.Second

	refreshLockKey = "gsc-refresh"
	refreshLockTTL = 30 * time.Second
)

const stateAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ConnectorOption configures a Connector.
type ConnectorOption func(*Connector)

// WithLocker serializes refreshes across processes sharing the token store.
func WithLocker(l ports.DistributedLocker) ConnectorOption {
	return func(c *Connector) {
		c.locker = l
	}
}

// WithConnectorLogger sets the logger.
func WithConnectorLogger(l *slog.Logger) ConnectorOption {
	return func(c *Connector) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient sets the client used for token exchange and refresh.
func WithHTTPClient(hc *http.Client) ConnectorOption {
	return func(c *Connector) {
		c.httpClient = hc
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ConnectorOption {
	return func(c *Connector) {
		c.now = now
	}
}

// Connector runs the authorization flow and hands out valid access tokens.
type Connector struct {
	cfg        *oauth2.Config
	tokens     ports.TokenStore
	states     ports.StateStore
	locker     ports.DistributedLocker
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	mu sync.Mutex
}

// NewConnector creates a Connector.
func NewConnector(cfg *oauth2.Config, tokens ports.TokenStore, states ports.StateStore, opts ...ConnectorOption) *Connector {
	c := &Connector{
		cfg:    cfg,
		tokens: tokens,
		states: states,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether client credentials are present.
func (c *Connector) Configured() bool {
	return c.cfg != nil && c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

func (c *Connector) oauthContext(ctx context.Context) context.Context {
	if c.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// ConnectURL stores a fresh state and returns the consent page URL.
func (c *Connector) ConnectURL(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	state, err := NewState()
	if err != nil {
		return "", err
	}
	if err := c.states.Put(ctx, state, StateTTL); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}
	return c.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Callback completes the flow started by ConnectURL. The state is consumed
// before anything else is checked, so a state never works twice.
func (c *Connector) Callback(ctx context.Context, state, code, providerErr string) error {
	if state == "" {
		return ErrInvalidState
	}
	ok, err := c.states.Consume(ctx, state)
	if err != nil {
		return fmt.Errorf("consume state: %w", err)
	}
	if !ok {
		return ErrInvalidState
	}

	if providerErr != "" {
		return fmt.Errorf("%w: %s", ErrProvider, providerErr)
	}
	if code == "" {
		return ErrMissingCode
	}

	token, err := c.cfg.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrProvider, describe(err))
	}

	if token.RefreshToken == "" {
		if prev, err := c.tokens.LoadToken(ctx); err == nil {
			token.RefreshToken = prev.RefreshToken
		}
	}
	if err := c.tokens.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	c.logger.Info("Search Console connected", "expiry", token.Expiry)
	return nil
}

// Disconnect forgets the stored token.
func (c *Connector) Disconnect(ctx context.Context) error {
	return c.tokens.DeleteToken(ctx)
}

// Connected reports whether a token is stored.
func (c *Connector) Connected(ctx context.Context) bool {
	_, err := c.tokens.LoadToken(ctx)
	return err == nil
}

// Token returns a token valid for at least ExpiryMargin, refreshing it when needed.
func (c *Connector) Token(ctx context.Context) (*oauth2.Token, error) {
	token, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if c.fresh(token) {
		return token, nil
	}
	return c.refresh(ctx)
}

// HTTPClient returns a client that authorizes requests with Token.
func (c *Connector) HTTPClient(ctx context.Context) (*http.Client, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(c.oauthContext(ctx), oauth2.StaticTokenSource(token)), nil
}

func (c *Connector) load(ctx context.Context) (*oauth2.Token, error) {
	token, err := c.tokens.LoadToken(ctx)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// fresh treats a zero expiry as non-expiring, matching oauth2.Token.
func (c *Connector) fresh(t *oauth2.Token) bool {
	if t.AccessToken == "" {
		return false
	}
	return t.Expiry.IsZero() || c.now().Add(ExpiryMargin).Before(t.Expiry)
}

func (c *Connector) refresh(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, refreshLockKey, refreshLockTTL)
		if err != nil {
			return nil, fmt.Errorf("lock refresh: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("Failed to release refresh lock", "err", err)
			}
		}()
	}

	// Another caller may have refreshed while we waited.
	token, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if c.fresh(token) {
		return token, nil
	}
	if token.RefreshToken == "" {
		return nil, ErrNotConnected
	}

	src := c.cfg.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: token.RefreshToken})
	next, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh: %s", ErrProvider, describe(err))
	}
	if next.RefreshToken == "" {
		next.RefreshToken = token.RefreshToken
	}
	if err := c.tokens.SaveToken(ctx, next); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	c.logger.Debug("Search Console token refreshed", "expiry", next.Expiry)
	return next, nil
}

// describe prefers the provider's error description over the raw response.
func describe(err error) string {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if re.ErrorDescription != "" {
			return re.ErrorDescription
		}
		if re.ErrorCode != "" {
			return re.ErrorCode
		}
	}
	return err.Error()
}

// NewState returns a random alphanumeric string of StateLength characters.
func NewState() (string, error) {
	buf := make([]byte, StateLength)
	limit := big.NewInt(int64(len(stateAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate state: %w", err)
		}
		buf[i] = stateAlphabet[n.Int64()]
	}
	return string(buf), nil
}
