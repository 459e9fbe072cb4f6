package crosspost

import (
	"maps"

	"github.com/aretw0/techseo/pkg/domain"
)

// Option configures a Formatter.
type Option func(*Formatter)

// WithLimit overrides the character limit of a single platform.
// Non-positive limits are ignored.
func WithLimit(p Platform, limit int) Option {
	return func(f *Formatter) {
		if limit > 0 {
			f.limits[p] = limit
		}
	}
}

// WithLimits applies WithLimit for every entry of l.
func WithLimits(l Limits) Option {
	return func(f *Formatter) {
		for p, limit := range l {
			WithLimit(p, limit)(f)
		}
	}
}

// Formatter renders posts for cross-posting. It is safe for concurrent use
// once constructed.
type Formatter struct {
	limits Limits
}

// New creates a Formatter with DefaultLimits adjusted by opts.
func New(opts ...Option) *Formatter {
	f := &Formatter{limits: DefaultLimits()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Limits returns a copy of the effective limits.
func (f *Formatter) Limits() Limits {
	return maps.Clone(f.limits)
}

// Limit returns the effective limit for p, or 0 for long-form platforms.
func (f *Formatter) Limit(p Platform) int {
	return f.limits[p]
}

// Format renders post for the named platform. An unknown platform, or a nil
// post, yields the empty string.
func (f *Formatter) Format(platform string, post *domain.Post) string {
	p, ok := ParsePlatform(platform)
	if !ok || post == nil {
		return ""
	}

	switch p {
	case DevTo, Medium:
		return Markdown(post)
	case LinkedIn:
		text := post.Title + "\n\n" + Summary(post) + "\n\n" + post.Permalink
		return TrimToLimit(text, f.Limit(p))
	default:
		return TrimToLimit(Summary(post)+" "+post.Permalink, f.Limit(p))
	}
}
