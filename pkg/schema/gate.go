package schema

import (
	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/aretw0/techseo/pkg/domain"
)

// IsValid reports whether a flattened block list qualifies for structured
// data: it needs at least one code block and at least one steps block.
func IsValid(flat []domain.Block) bool {
	hasCode, hasSteps := false, false
	for _, b := range flat {
		switch b.Name {
		case domain.BlockCode:
			hasCode = true
		case domain.BlockSteps, domain.BlockStep:
			hasSteps = true
		}
		if hasCode && hasSteps {
			return true
		}
	}
	return false
}

// IsPostValid reports whether a post has opted in and its content passes IsValid.
func IsPostValid(post *domain.Post) bool {
	if post == nil || !post.Enabled {
		return false
	}
	return IsValid(blocks.Flatten(blocks.Tree(post)))
}
