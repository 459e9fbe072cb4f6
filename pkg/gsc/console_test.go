package gsc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestConsole(t *testing.T) (*Console, *fakeConsole) {
	t.Helper()
	api := newFakeConsole(t)
	conn, _, tokens := newTestConnector(t)
	return NewConsole(conn, tokens, option.WithEndpoint(api.URL+"/")), api
}

func TestConsole_NotConnected(t *testing.T) {
	console, _ := newTestConsole(t)
	ctx := context.Background()

	_, err := console.Sites(ctx)
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, console.SelectSite(ctx, "https://blog.example/"))
	_, err = console.Inspect(ctx, "https://blog.example/deploy/")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConsole_NoSite(t *testing.T) {
	console, _ := newTestConsole(t)
	ctx := context.Background()
	connect(t, console.Connector())

	_, err := console.Inspect(ctx, "https://blog.example/deploy/")
	assert.ErrorIs(t, err, ErrNoSite)
	_, err = console.Analytics(ctx, "https://blog.example/deploy/")
	assert.ErrorIs(t, err, ErrNoSite)
	assert.ErrorIs(t, console.SelectSite(ctx, "  "), ErrNoSite)
}

func TestConsole_Flow(t *testing.T) {
	console, api := newTestConsole(t)
	ctx := context.Background()
	connect(t, console.Connector())

	sites, err := console.Sites(ctx)
	require.NoError(t, err)
	require.NoError(t, console.SelectSite(ctx, sites[0]))

	site, err := console.Site(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example/", site)

	inspection, err := console.Inspect(ctx, "https://blog.example/deploy/")
	require.NoError(t, err)
	assert.Equal(t, "PASS", inspection.Verdict)

	console.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	metrics, err := console.Analytics(ctx, "https://blog.example/deploy/")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-03", metrics.StartDate)
	assert.Equal(t, 12.0, metrics.Clicks)

	api.mu.Lock()
	defer api.mu.Unlock()
	for _, h := range api.authHeads {
		assert.Equal(t, "Bearer access-1", h)
	}
}

func TestConfig_OAuth2(t *testing.T) {
	cfg := Config{ClientID: "id", ClientSecret: "secret", RedirectURL: "https://b/cb"}
	assert.True(t, cfg.Configured())
	assert.False(t, Config{ClientID: "id"}.Configured())

	oc := cfg.OAuth2()
	assert.Equal(t, Scopes, oc.Scopes)
	assert.Contains(t, oc.Endpoint.AuthURL, "accounts.google.com")
}
