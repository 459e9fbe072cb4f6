package crosspost

import (
	"strings"
	"unicode"

	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/aretw0/techseo/pkg/domain"
)

// Ellipsis marks text cut by TrimToLimit.
const Ellipsis = "…"

// Summary returns the post's stripped excerpt, or else the text of its first
// non-empty top-level paragraph, or else its title.
func Summary(post *domain.Post) string {
	if excerpt := blocks.StripTags(post.Excerpt); excerpt != "" {
		return excerpt
	}
	for _, b := range blocks.Tree(post) {
		if b.Name != domain.BlockParagraph {
			continue
		}
		if text := blocks.StripTags(b.InnerHTML); text != "" {
			return text
		}
	}
	return post.Title
}

// TrimToLimit cuts s to at most limit characters. Longer strings keep their
// first limit-1 characters, minus trailing whitespace, followed by Ellipsis.
// A non-positive limit disables trimming.
func TrimToLimit(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	head := strings.TrimRightFunc(string(runes[:limit-1]), unicode.IsSpace)
	return head + Ellipsis
}
