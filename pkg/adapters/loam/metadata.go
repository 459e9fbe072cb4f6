package loam

// PostMetadata is the frontmatter of a post file.
// It uses "mapstructure" tags to match the YAML keys.
type PostMetadata struct {
	ID        int64    `json:"id" mapstructure:"id"`
	Title     string   `json:"title" mapstructure:"title"`
	Permalink string   `json:"permalink" mapstructure:"permalink"`
	Slug      string   `json:"slug" mapstructure:"slug"`
	Excerpt   string   `json:"excerpt" mapstructure:"excerpt"`
	Author    string   `json:"author" mapstructure:"author"`
	Tags      []string `json:"tags" mapstructure:"tags"`
	Status    string   `json:"status" mapstructure:"status"`

	// Enabled opts the post into structured data output.
	Enabled bool `json:"techarticle_enabled" mapstructure:"techarticle_enabled"`
}
