package loam

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/techseo/pkg/domain"
)

// Posts adapts a Loam repository of Markdown files to ports.PostRepository.
// The frontmatter carries PostMetadata; the body is the serialized block content.
type Posts struct {
	Repo    *loam.TypedRepository[PostMetadata]
	baseURL string
}

// Option configures Posts.
type Option func(*Posts)

// WithBaseURL derives permalinks for posts without one as baseURL + slug.
func WithBaseURL(baseURL string) Option {
	return func(p *Posts) {
		p.baseURL = baseURL
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PostMetadata], opts ...Option) *Posts {
	p := &Posts{Repo: repo}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open initializes a read-only Loam repository rooted at dir.
func Open(dir string, opts ...Option) (*Posts, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numbers as json.Number so large IDs survive decoding.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PostMetadata](repo), opts...), nil
}

// Create initializes a writable Loam repository rooted at dir, creating it
// when missing. Versioning is off, so Save writes plain files.
func Create(dir string, opts ...Option) (*Posts, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[PostMetadata](repo), opts...), nil
}

// Save writes post as a Markdown file named after its slug, or its ID when
// the permalink has no usable last segment.
func (p *Posts) Save(ctx context.Context, post *domain.Post) error {
	if post == nil || post.ID <= 0 {
		return fmt.Errorf("post must have a positive ID")
	}

	name := slugOf(post.Permalink)
	if name == "" {
		name = strconv.FormatInt(post.ID, 10)
	}

	err := p.Repo.Save(ctx, &loam.DocumentModel[PostMetadata]{
		ID:      name,
		Content: post.Content,
		Data: PostMetadata{
			ID:        post.ID,
			Title:     post.Title,
			Permalink: post.Permalink,
			Slug:      name,
			Excerpt:   post.Excerpt,
			Author:    post.AuthorName,
			Tags:      post.Tags,
			Status:    post.Status,
			Enabled:   post.Enabled,
		},
	})
	if err != nil {
		return fmt.Errorf("save post %d: %w", post.ID, err)
	}
	return nil
}

// Get resolves a post by its frontmatter ID, or by a numeric file name.
func (p *Posts) Get(ctx context.Context, id int64) (*domain.Post, error) {
	posts, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	i := sort.Search(len(posts), func(i int) bool { return posts[i].ID >= id })
	if i < len(posts) && posts[i].ID == id {
		return posts[i], nil
	}
	return nil, fmt.Errorf("post %d: %w", id, domain.ErrPostNotFound)
}

// List returns every post ordered by ID. Files without a resolvable ID are
// skipped; two files resolving to the same ID are an error.
func (p *Posts) List(ctx context.Context) ([]*domain.Post, error) {
	docs, err := p.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[int64]string, len(docs))
	posts := make([]*domain.Post, 0, len(docs))
	for _, doc := range docs {
		id := doc.Data.ID
		if id <= 0 {
			id = idFromName(doc.ID)
		}
		if id <= 0 {
			continue
		}
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: post %d is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID

		posts = append(posts, p.toPost(id, doc.ID, doc.Data, doc.Content))
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (p *Posts) toPost(id int64, docID string, meta PostMetadata, content string) *domain.Post {
	permalink := meta.Permalink
	if permalink == "" && p.baseURL != "" {
		slug := meta.Slug
		if slug == "" {
			slug = path.Base(trimExtension(docID))
		}
		permalink = strings.TrimSuffix(p.baseURL, "/") + "/" + slug + "/"
	}

	return &domain.Post{
		ID:         id,
		Title:      meta.Title,
		Permalink:  permalink,
		Excerpt:    meta.Excerpt,
		AuthorName: meta.Author,
		Tags:       meta.Tags,
		Status:     meta.Status,
		Enabled:    meta.Enabled,
		Content:    strings.TrimSpace(content),
	}
}

// idFromName parses names like "42.md" or "posts/42.md".
func idFromName(name string) int64 {
	id, err := strconv.ParseInt(path.Base(trimExtension(name)), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// slugOf returns the last path segment of a permalink.
func slugOf(permalink string) string {
	trimmed := strings.TrimSuffix(permalink, "/")
	if i := strings.Index(trimmed, "://"); i >= 0 {
		trimmed = trimmed[i+3:]
		if j := strings.Index(trimmed, "/"); j >= 0 {
			trimmed = trimmed[j:]
		} else {
			return ""
		}
	}
	base := path.Base("/" + strings.TrimPrefix(trimmed, "/"))
	if base == "/" {
		return ""
	}
	return base
}

func trimExtension(id string) string {
	id = filepath.ToSlash(id)
	return strings.TrimSuffix(id, path.Ext(id))
}
