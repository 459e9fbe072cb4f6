package blocks

import "github.com/aretw0/techseo/pkg/domain"

// MaxDepth bounds how deep the walkers descend into nested blocks.
// Subtrees below this depth are not visited.
const MaxDepth = 64

// Flatten returns the blocks of a tree in pre-order: every block precedes its
// children and siblings keep their original order. Nothing is filtered out.
func Flatten(tree []domain.Block) []domain.Block {
	flat := make([]domain.Block, 0, len(tree))
	_ = Walk(tree, func(b domain.Block, _ int) error {
		flat = append(flat, b)
		return nil
	})
	return flat
}

// Walk visits every block of the tree in pre-order together with its depth
// (top-level blocks have depth 0). It stops at the first error returned by fn.
func Walk(tree []domain.Block, fn func(b domain.Block, depth int) error) error {
	return walk(tree, 0, fn)
}

func walk(tree []domain.Block, depth int, fn func(domain.Block, int) error) error {
	if depth >= MaxDepth {
		return nil
	}
	for _, b := range tree {
		if err := fn(b, depth); err != nil {
			return err
		}
		if len(b.InnerBlocks) > 0 {
			if err := walk(b.InnerBlocks, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count returns the number of blocks in the tree, nested ones included.
func Count(tree []domain.Block) int {
	n := 0
	_ = Walk(tree, func(domain.Block, int) error {
		n++
		return nil
	})
	return n
}

// Tree returns the content tree of a post, parsing its content when no
// pre-parsed blocks are attached.
func Tree(post *domain.Post) []domain.Block {
	if post == nil {
		return nil
	}
	if len(post.Blocks) > 0 {
		return post.Blocks
	}
	return Parse(post.Content)
}
