package gsc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/techseo/pkg/ports"
	"google.golang.org/api/option"
)

// Console answers Search Console requests for the selected property.
type Console struct {
	conn   *Connector
	tokens ports.TokenStore
	opts   []option.ClientOption
	now    func() time.Time
}

// NewConsole creates a Console. opts are passed to every Client it builds.
func NewConsole(conn *Connector, tokens ports.TokenStore, opts ...option.ClientOption) *Console {
	return &Console{
		conn:   conn,
		tokens: tokens,
		opts:   opts,
		now:    time.Now,
	}
}

// Connector returns the underlying Connector.
func (c *Console) Connector() *Connector {
	return c.conn
}

func (c *Console) client(ctx context.Context) (*Client, error) {
	hc, err := c.conn.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, hc, c.opts...)
}

// Sites lists the accessible properties.
func (c *Console) Sites(ctx context.Context) ([]string, error) {
	client, err := c.client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Sites(ctx)
}

// Site returns the selected property.
func (c *Console) Site(ctx context.Context) (string, error) {
	return c.tokens.Site(ctx)
}

// SelectSite stores the property used by Inspect and Analytics.
func (c *Console) SelectSite(ctx context.Context, site string) error {
	site = strings.TrimSpace(site)
	if site == "" {
		return ErrNoSite
	}
	return c.tokens.SetSite(ctx, site)
}

func (c *Console) site(ctx context.Context) (string, error) {
	site, err := c.tokens.Site(ctx)
	if err != nil {
		return "", fmt.Errorf("load site: %w", err)
	}
	if site == "" {
		return "", ErrNoSite
	}
	return site, nil
}

// Inspect inspects pageURL within the selected property.
func (c *Console) Inspect(ctx context.Context, pageURL string) (*Inspection, error) {
	site, err := c.site(ctx)
	if err != nil {
		return nil, err
	}
	client, err := c.client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Inspect(ctx, site, pageURL)
}

// Analytics returns the metrics of pageURL over the AnalyticsWindow.
func (c *Console) Analytics(ctx context.Context, pageURL string) (*Metrics, error) {
	site, err := c.site(ctx)
	if err != nil {
		return nil, err
	}
	client, err := c.client(ctx)
	if err != nil {
		return nil, err
	}
	start, end := AnalyticsWindow(c.now())
	return client.Analytics(ctx, site, pageURL, start, end)
}
