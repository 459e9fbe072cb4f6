package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/techseo/pkg/domain"
)

// Posts implements ports.PostRepository using an in-memory map.
// Safe for concurrent use.
type Posts struct {
	data map[int64]*domain.Post
	mu   sync.RWMutex
}

// NewPosts creates a repository holding copies of posts.
func NewPosts(posts ...*domain.Post) (*Posts, error) {
	r := &Posts{data: make(map[int64]*domain.Post, len(posts))}
	for _, p := range posts {
		if err := r.Put(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Put adds or replaces a post.
func (r *Posts) Put(p *domain.Post) error {
	if p == nil || p.ID <= 0 {
		return fmt.Errorf("post must have a positive ID")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = clonePost(p)
	return nil
}

// Get retrieves a copy of the post.
func (r *Posts) Get(ctx context.Context, id int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("post %d: %w", id, domain.ErrPostNotFound)
	}
	return clonePost(p), nil
}

// List returns copies of all posts ordered by ID.
func (r *Posts) List(ctx context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(r.data))
	for _, p := range r.data {
		posts = append(posts, clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Tags = slices.Clone(p.Tags)
	c.Blocks = slices.Clone(p.Blocks)
	return &c
}
