package techseo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/techseo/internal/logging"
	"github.com/aretw0/techseo/pkg/crosspost"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/aretw0/techseo/pkg/llms"
	"github.com/aretw0/techseo/pkg/ports"
	"github.com/aretw0/techseo/pkg/schema"
)

// EntitiesFunc supplies extra JSON-LD entities for a post's head markup.
type EntitiesFunc func(post *domain.Post) []any

// Engine is the high-level entry point for the techseo library.
// It resolves posts through a PostRepository and runs the pure
// transformations of the schema, crosspost and llms packages over them.
type Engine struct {
	repo         ports.PostRepository
	aboutFilter  schema.AboutFilter
	limits       crosspost.Limits
	entities     EntitiesFunc
	site         llms.Site
	crossPosting bool
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	now          func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLimits overrides cross-posting character limits per platform.
func WithLimits(l crosspost.Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

// WithAboutFilter post-processes the "about" entries of every TechArticle.
func WithAboutFilter(f schema.AboutFilter) Option {
	return func(e *Engine) {
		e.aboutFilter = f
	}
}

// WithEntities registers a source of extra JSON-LD entities.
func WithEntities(f EntitiesFunc) Option {
	return func(e *Engine) {
		e.entities = f
	}
}

// WithSite sets the site identity used by the llms.txt index.
func WithSite(site llms.Site) Option {
	return func(e *Engine) {
		e.site = site
	}
}

// WithCrossPosting switches the cross-posting module on or off (default on).
func WithCrossPosting(enabled bool) Option {
	return func(e *Engine) {
		e.crossPosting = enabled
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for events and the llms.txt stamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine reading posts from repo.
func New(repo ports.PostRepository, opts ...Option) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("post repository is required")
	}

	eng := &Engine{
		repo:         repo,
		crossPosting: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so callers never need nil checks.
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng, nil
}

// Repository returns the underlying PostRepository.
func (e *Engine) Repository() ports.PostRepository {
	return e.repo
}

// CrossPostingEnabled reports whether CrossPost is allowed.
func (e *Engine) CrossPostingEnabled() bool {
	return e.crossPosting
}

// Site returns the configured site identity.
func (e *Engine) Site() llms.Site {
	return e.site
}

// Post resolves a post by ID.
func (e *Engine) Post(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (e *Engine) extractor() *schema.Extractor {
	return schema.NewExtractor(schema.WithAboutFilter(e.aboutFilter))
}

func (e *Engine) formatter() *crosspost.Formatter {
	return crosspost.New(crosspost.WithLimits(e.limits))
}

// IsPostValid reports whether post opted in and carries both code and steps.
func (e *Engine) IsPostValid(post *domain.Post) bool {
	return schema.IsPostValid(post)
}

// Schema builds the TechArticle of an enabled post. The boolean is false when
// the post is disabled or does not qualify; that is not an error.
func (e *Engine) Schema(ctx context.Context, post *domain.Post) (*schema.TechArticle, bool) {
	if post == nil {
		return nil, false
	}

	var (
		article *schema.TechArticle
		ok      bool
	)
	if post.Enabled {
		article, ok = e.extractor().Extract(post)
	}

	evt := &domain.SchemaEvent{
		EventBase: domain.EventBase{
			Timestamp: e.now(),
			Type:      domain.EventSchemaSkipped,
			PostID:    post.ID,
		},
	}
	if ok {
		evt.Type = domain.EventSchemaBuilt
		evt.CodeSamples = len(article.SoftwareCode)
		evt.Steps = len(article.Steps())
		e.logger.Debug("TechArticle built", "post_id", post.ID, "code_samples", evt.CodeSamples, "steps", evt.Steps)
	} else {
		e.logger.Debug("TechArticle skipped", "post_id", post.ID, "enabled", post.Enabled)
	}
	if e.hooks.OnSchema != nil {
		e.hooks.OnSchema(ctx, evt)
	}

	return article, ok
}

// CrossPost renders post for platform. It fails with
// domain.ErrCrossPostingDisabled when the module is off, with
// domain.ErrPostNotFound for a nil post and with
// domain.ErrUnsupportedPlatform for unknown platforms.
func (e *Engine) CrossPost(ctx context.Context, platform string, post *domain.Post) (string, error) {
	if !e.crossPosting {
		return "", domain.ErrCrossPostingDisabled
	}
	if post == nil {
		return "", fmt.Errorf("%w: no post to render", domain.ErrPostNotFound)
	}

	content := e.formatter().Format(platform, post)
	if content == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedPlatform, platform)
	}

	if e.hooks.OnCrossPost != nil {
		e.hooks.OnCrossPost(ctx, &domain.CrossPostEvent{
			EventBase: domain.EventBase{
				Timestamp: e.now(),
				Type:      domain.EventCrossPostBuilt,
				PostID:    post.ID,
			},
			Platform: strings.ToLower(strings.TrimSpace(platform)),
			Length:   len([]rune(content)),
		})
	}
	return content, nil
}

// HeadMarkup returns the JSON-LD script elements for a post: one for the
// TechArticle when it qualifies and one holding the extra entities when any
// are supplied. Each element ends with a newline.
func (e *Engine) HeadMarkup(ctx context.Context, post *domain.Post) (string, error) {
	var sb strings.Builder

	if article, ok := e.Schema(ctx, post); ok {
		script, err := schema.Script(article)
		if err != nil {
			return "", fmt.Errorf("encode TechArticle: %w", err)
		}
		sb.WriteString(script + "\n")
	}

	if e.entities != nil && post != nil {
		if extra := e.entities(post); len(extra) > 0 {
			script, err := schema.Script(extra)
			if err != nil {
				return "", fmt.Errorf("encode entities: %w", err)
			}
			sb.WriteString(script + "\n")
		}
	}

	return sb.String(), nil
}

// LLMSText builds the llms.txt index from the first llms.MaxItems published,
// enabled posts that pass the validity gate. It returns "" when none qualify.
func (e *Engine) LLMSText(ctx context.Context) (string, error) {
	posts, err := e.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list posts: %w", err)
	}

	var items []llms.Item
	considered := 0
	for _, p := range posts {
		if !p.IsPublished() || !p.Enabled {
			continue
		}
		if considered == llms.MaxItems {
			break
		}
		considered++
		if !schema.IsPostValid(p) {
			continue
		}
		items = append(items, llms.Item{Title: p.Title, URL: p.Permalink})
	}

	e.logger.Debug("llms.txt built", "candidates", considered, "items", len(items))
	return llms.Build(e.site, items, e.now()), nil
}
