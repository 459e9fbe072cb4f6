package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aretw0/techseo"
	"github.com/aretw0/techseo/internal/logging"
	"github.com/aretw0/techseo/pkg/adapters/memory"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/aretw0/techseo/pkg/gsc"
	"github.com/aretw0/techseo/pkg/llms"
	"github.com/aretw0/techseo/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

const techContent = `<!-- wp:paragraph --><p>Ship a Go binary.</p><!-- /wp:paragraph -->
<!-- wp:code {"language":"go"} --><pre class="wp-block-code"><code>fmt.Println("hi")</code></pre><!-- /wp:code -->
<!-- wp:forwp-seo/techarticle-steps {"steps":[{"text":"Build"},{"text":"Deploy"}]} /-->`

func newEngine(t *testing.T, opts ...techseo.Option) *techseo.Engine {
	t.Helper()
	posts, err := memory.NewPosts(
		&domain.Post{ID: 1, Title: "Valid", Permalink: "https://e.co/valid/", Enabled: true, Content: techContent},
		&domain.Post{ID: 2, Title: "Disabled", Permalink: "https://e.co/disabled/", Content: techContent},
	)
	require.NoError(t, err)

	opts = append([]techseo.Option{
		techseo.WithLogger(logging.NewNop()),
		techseo.WithSite(llms.Site{Name: "Blog", Home: "https://e.co/"}),
	}, opts...)
	eng, err := techseo.New(posts, opts...)
	require.NoError(t, err)
	return eng
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var e Error
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

func TestHealthAndInfo(t *testing.T) {
	h := NewHandler(newEngine(t))

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, h, "/info")
	require.Equal(t, http.StatusOK, rec.Code)
	var info map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "techseo", info["app"])
	assert.Equal(t, strings.TrimSpace(techseo.Version), info["version"])
	assert.Equal(t, "Blog", info["site"])
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	h := NewHandler(newEngine(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/crosspost", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetCrossPost(t *testing.T) {
	h := NewHandler(newEngine(t))

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"Bad ID", "/crosspost?post_id=abc&platform=x", http.StatusBadRequest, "invalid_post_id"},
		{"Missing ID", "/crosspost?platform=x", http.StatusBadRequest, "invalid_post_id"},
		{"Unknown Post", "/crosspost?post_id=99&platform=x", http.StatusNotFound, "not_found"},
		{"Unknown Platform", "/crosspost?post_id=1&platform=myspace", http.StatusBadRequest, "invalid_platform"},
		{"Missing Platform", "/crosspost?post_id=1", http.StatusBadRequest, "invalid_platform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}

	rec := get(t, h, "/crosspost?post_id=1&platform=X")
	require.Equal(t, http.StatusOK, rec.Code)
	var body CrossPostResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Ship a Go binary. https://e.co/valid/", body.Content)
}

func TestGetCrossPost_Disabled(t *testing.T) {
	h := NewHandler(newEngine(t, techseo.WithCrossPosting(false)))

	rec := get(t, h, "/crosspost?post_id=1&platform=x")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "crossposting_disabled", decodeError(t, rec).Code)
}

func TestGetSchema(t *testing.T) {
	h := NewHandler(newEngine(t))

	rec := get(t, h, "/posts/1/schema")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/ld+json", rec.Header().Get("Content-Type"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "TechArticle", doc["@type"])
	assert.Equal(t, "Valid", doc["headline"])

	rec = get(t, h, "/posts/2/schema")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(t, h, "/posts/99/schema")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHead(t *testing.T) {
	h := NewHandler(newEngine(t))

	rec := get(t, h, "/posts/1/head")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), `<script type="application/ld+json">`))

	rec = get(t, h, "/posts/2/head")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetLLMSText(t *testing.T) {
	rec := get(t, NewHandler(newEngine(t)), "/llms.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "# Blog TechArticle\n")
	assert.Contains(t, rec.Body.String(), "- Valid — https://e.co/valid/\n")
	assert.NotContains(t, rec.Body.String(), "Disabled")

	empty, err := memory.NewPosts()
	require.NoError(t, err)
	eng, err := techseo.New(empty, techseo.WithLogger(logging.NewNop()))
	require.NoError(t, err)
	rec = get(t, NewHandler(eng), "/llms.txt")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := NewHandler(newEngine(t, techseo.WithLifecycleHooks(m.Hooks(logging.NewNop()))), WithMetrics(m, reg))

	get(t, h, "/posts/1/schema")
	get(t, h, "/crosspost?post_id=1&platform=bsky")

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `techseo_http_requests_total{code="200",route="/posts/{id}/schema"} 1`)
	assert.Contains(t, body, `techseo_schemas_total{result="built"} 1`)
	assert.Contains(t, body, `techseo_crossposts_total{platform="bsky"} 1`)
}

func TestGSCRoutesAbsentWithoutConsole(t *testing.T) {
	rec := get(t, NewHandler(newEngine(t)), "/gsc/sites")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type gscFixture struct {
	handler http.Handler
	tokens  *memory.TokenStore
	api     *httptest.Server
}

func newGSCFixture(t *testing.T) *gscFixture {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/webmasters/v3/sites":
			w.Write([]byte(`{"siteEntry":[{"siteUrl":"https://e.co/","permissionLevel":"siteOwner"}]}`))
		case strings.HasSuffix(r.URL.Path, "/searchAnalytics/query"):
			w.Write([]byte(`{"rows":[{"clicks":7,"impressions":70,"ctr":0.1,"position":3.5}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.Close)

	tokens := memory.NewTokenStore()
	cfg := &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "https://e.co/gsc/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: "https://accounts.example/auth", TokenURL: api.URL + "/token"},
		Scopes:       gsc.Scopes,
	}
	conn := gsc.NewConnector(cfg, tokens, memory.NewStateStore(), gsc.WithConnectorLogger(logging.NewNop()))
	console := gsc.NewConsole(conn, tokens, option.WithEndpoint(api.URL+"/"))

	h := NewHandler(newEngine(t), WithConsole(console, "/wp-admin/admin.php?page=techseo"), WithLogger(logging.NewNop()))
	return &gscFixture{handler: h, tokens: tokens, api: api}
}

func (f *gscFixture) connect(t *testing.T) {
	t.Helper()
	require.NoError(t, f.tokens.SaveToken(context.Background(), &oauth2.Token{AccessToken: "access", RefreshToken: "refresh"}))
}

func TestGSC_NotConnected(t *testing.T) {
	f := newGSCFixture(t)

	rec := get(t, f.handler, "/gsc/sites")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "not_connected", decodeError(t, rec).Code)

	rec = post(t, f.handler, "/gsc/site", `{"site":"https://e.co/"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = post(t, f.handler, "/gsc/analytics", `{"url":"https://e.co/valid/"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "not_connected", decodeError(t, rec).Code)
}

func TestGSC_NoSite(t *testing.T) {
	f := newGSCFixture(t)
	f.connect(t)

	rec := post(t, f.handler, "/gsc/inspect", `{"url":"https://e.co/valid/"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "no_site", decodeError(t, rec).Code)

	rec = post(t, f.handler, "/gsc/site", `{"site":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGSC_BadBodies(t *testing.T) {
	f := newGSCFixture(t)
	f.connect(t)

	rec := post(t, f.handler, "/gsc/inspect", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_body", decodeError(t, rec).Code)

	rec = post(t, f.handler, "/gsc/inspect", `{"url":"/relative"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_url", decodeError(t, rec).Code)
}

func TestGSC_SitesAndAnalytics(t *testing.T) {
	f := newGSCFixture(t)
	f.connect(t)

	rec := get(t, f.handler, "/gsc/sites")
	require.Equal(t, http.StatusOK, rec.Code)
	var sites SitesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sites))
	assert.Equal(t, []string{"https://e.co/"}, sites.Sites)
	assert.Empty(t, sites.Selected)

	require.Equal(t, http.StatusOK, post(t, f.handler, "/gsc/site", `{"site":"https://e.co/"}`).Code)

	rec = post(t, f.handler, "/gsc/analytics", `{"url":"https://e.co/valid/"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var metrics gsc.Metrics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&metrics))
	assert.Equal(t, 7.0, metrics.Clicks)
	assert.Equal(t, 70.0, metrics.Impressions)
	assert.Equal(t, 3.5, metrics.Position)
}

func TestGSC_ConnectAndCallback(t *testing.T) {
	f := newGSCFixture(t)

	rec := get(t, f.handler, "/gsc/connect")
	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.example", loc.Host)
	assert.Equal(t, "offline", loc.Query().Get("access_type"))
	state := loc.Query().Get("state")
	require.Len(t, state, gsc.StateLength)

	rec = get(t, f.handler, "/gsc/callback?state="+state+"&error=access_denied")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/wp-admin/admin.php?page=techseo&gsc_error=access_denied", rec.Header().Get("Location"))

	// The state was consumed by the first callback.
	rec = get(t, f.handler, "/gsc/callback?state="+state+"&code=abc")
	assert.Equal(t, "/wp-admin/admin.php?page=techseo&gsc_error=invalid_state", rec.Header().Get("Location"))
}

func TestGSC_CallbackMissingCode(t *testing.T) {
	f := newGSCFixture(t)

	loc, err := url.Parse(get(t, f.handler, "/gsc/connect").Header().Get("Location"))
	require.NoError(t, err)

	rec := get(t, f.handler, "/gsc/callback?state="+loc.Query().Get("state"))
	assert.Equal(t, "/wp-admin/admin.php?page=techseo&gsc_error=missing_code", rec.Header().Get("Location"))
}

func TestCallbackReason(t *testing.T) {
	assert.Equal(t, "invalid_state", callbackReason(gsc.ErrInvalidState))
	assert.Equal(t, "callback_failed", callbackReason(assert.AnError))
}
