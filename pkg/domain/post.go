package domain

// Post is a read-only snapshot of a post as seen by the core.
type Post struct {
	ID         int64    `json:"id" yaml:"id" mapstructure:"id"`
	Title      string   `json:"title" yaml:"title" mapstructure:"title"`
	Permalink  string   `json:"permalink" yaml:"permalink" mapstructure:"permalink"`
	Excerpt    string   `json:"excerpt,omitempty" yaml:"excerpt,omitempty" mapstructure:"excerpt"`
	AuthorName string   `json:"author,omitempty" yaml:"author,omitempty" mapstructure:"author"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"tags"`
	Status     string   `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`

	// Enabled is the per-post opt-in for structured data output.
	Enabled bool `json:"techarticle_enabled" yaml:"techarticle_enabled" mapstructure:"techarticle_enabled"`

	// Content is the serialized block markup.
	Content string `json:"content" yaml:"content" mapstructure:"content"`

	// Blocks is an already parsed tree. When set it takes precedence over Content.
	Blocks []Block `json:"blocks,omitempty" yaml:"blocks,omitempty" mapstructure:"blocks"`
}

// IsPublished reports whether the post is publicly visible.
// An empty status is treated as published.
func (p *Post) IsPublished() bool {
	return p.Status == "" || p.Status == StatusPublish
}
