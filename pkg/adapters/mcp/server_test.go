package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/techseo"
	"github.com/aretw0/techseo/internal/logging"
	"github.com/aretw0/techseo/pkg/adapters/memory"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const techContent = `<!-- wp:paragraph --><p>Ship a Go binary.</p><!-- /wp:paragraph -->
<!-- wp:code {"language":"go"} --><pre class="wp-block-code"><code>fmt.Println("hi")</code></pre><!-- /wp:code -->
<!-- wp:forwp-seo/techarticle-steps {"steps":[{"text":"Build"},{"text":"Deploy"}]} /-->`

func newServer(t *testing.T, opts ...techseo.Option) *Server {
	t.Helper()
	posts, err := memory.NewPosts(
		&domain.Post{ID: 1, Title: "Valid", Permalink: "https://e.co/valid/", Enabled: true, Content: techContent},
		&domain.Post{ID: 2, Title: "Disabled", Permalink: "https://e.co/disabled/", Content: techContent},
	)
	require.NoError(t, err)

	opts = append([]techseo.Option{techseo.WithLogger(logging.NewNop())}, opts...)
	eng, err := techseo.New(posts, opts...)
	require.NoError(t, err)
	return NewServer(eng)
}

func TestExtractSchema(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleExtractSchema(ctx, mcp.CallToolRequest{}, PostArgs{PostID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 1, resp.Samples)
	assert.Equal(t, 2, resp.Steps)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.JSONLD), &doc))
	assert.Equal(t, "TechArticle", doc["@type"])

	resp, err = s.handleExtractSchema(ctx, mcp.CallToolRequest{}, PostArgs{PostID: 2})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.JSONLD)
}

func TestExtractSchema_UnknownPost(t *testing.T) {
	s := newServer(t)

	_, err := s.handleExtractSchema(context.Background(), mcp.CallToolRequest{}, PostArgs{PostID: 42})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	_, err = s.handleExtractSchema(context.Background(), mcp.CallToolRequest{}, PostArgs{})
	assert.ErrorContains(t, err, "positive integer")
}

func TestCrossPost(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleCrossPost(ctx, mcp.CallToolRequest{}, CrossPostArgs{PostID: 1, Platform: " BSKY "})
	require.NoError(t, err)
	assert.Equal(t, "bsky", resp.Platform)
	assert.Equal(t, "Ship a Go binary. https://e.co/valid/", resp.Content)

	_, err = s.handleCrossPost(ctx, mcp.CallToolRequest{}, CrossPostArgs{PostID: 1, Platform: "myspace"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestCrossPost_Disabled(t *testing.T) {
	s := newServer(t, techseo.WithCrossPosting(false))

	_, err := s.handleCrossPost(context.Background(), mcp.CallToolRequest{}, CrossPostArgs{PostID: 1, Platform: "x"})
	assert.ErrorIs(t, err, domain.ErrCrossPostingDisabled)
}

func TestValidate(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	resp, err := s.handleValidate(ctx, mcp.CallToolRequest{}, PostArgs{PostID: 1})
	require.NoError(t, err)
	assert.Equal(t, ValidateResponse{PostID: 1, Enabled: true, Valid: true}, resp)

	resp, err = s.handleValidate(ctx, mcp.CallToolRequest{}, PostArgs{PostID: 2})
	require.NoError(t, err)
	assert.Equal(t, ValidateResponse{PostID: 2}, resp)
}

func TestToolsList(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}`))
	msg := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	for _, name := range []string{"extract_schema", "crosspost", "validate_post"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
