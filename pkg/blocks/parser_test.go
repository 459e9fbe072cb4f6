package blocks

import (
	"testing"

	"github.com/aretw0/techseo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TopLevelBlocks(t *testing.T) {
	content := `<!-- wp:heading {"level":3} -->
<h3>Install</h3>
<!-- /wp:heading -->

<!-- wp:paragraph -->
<p>Body</p>
<!-- /wp:paragraph -->`

	tree := Parse(content)
	require.Len(t, tree, 2)

	assert.Equal(t, domain.BlockHeading, tree[0].Name)
	assert.Equal(t, float64(3), tree[0].Attrs["level"])
	assert.Equal(t, "\n<h3>Install</h3>\n", tree[0].InnerHTML)

	assert.Equal(t, domain.BlockParagraph, tree[1].Name)
	assert.Empty(t, tree[1].Attrs)
}

func TestParse_NestedBlocks(t *testing.T) {
	content := `<!-- wp:forwp-seo/techarticle-step -->
<div class="step"><!-- wp:paragraph --><p>Run it</p><!-- /wp:paragraph --><!-- wp:code {"language":"go"} --><pre><code>go run .</code></pre><!-- /wp:code --></div>
<!-- /wp:forwp-seo/techarticle-step -->`

	tree := Parse(content)
	require.Len(t, tree, 1)

	step := tree[0]
	assert.Equal(t, domain.BlockStep, step.Name)
	require.Len(t, step.InnerBlocks, 2)
	assert.Equal(t, domain.BlockParagraph, step.InnerBlocks[0].Name)
	assert.Equal(t, "<p>Run it</p>", step.InnerBlocks[0].InnerHTML)
	assert.Equal(t, domain.BlockCode, step.InnerBlocks[1].Name)
	assert.Equal(t, "go", step.InnerBlocks[1].Attrs["language"])

	// Nested markup is not part of the parent's own markup.
	assert.NotContains(t, step.InnerHTML, "Run it")
	assert.Contains(t, step.InnerHTML, `<div class="step">`)
}

func TestParse_VoidBlocks(t *testing.T) {
	content := `<!-- wp:forwp-seo/techarticle-steps {"steps":[{"text":"One"},{"text":"Two"}]} /--><!-- wp:separator /-->`

	tree := Parse(content)
	require.Len(t, tree, 2)
	assert.Equal(t, domain.BlockSteps, tree[0].Name)
	assert.Equal(t, []string{"One", "Two"}, StepTexts(tree[0]))
	assert.Equal(t, "core/separator", tree[1].Name)
}

func TestParse_Resilience(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, tree []domain.Block)
	}{
		{
			name:    "empty",
			content: "",
			check: func(t *testing.T, tree []domain.Block) {
				assert.Empty(t, tree)
			},
		},
		{
			name:    "freeform html",
			content: "<p>Classic</p>",
			check: func(t *testing.T, tree []domain.Block) {
				require.Len(t, tree, 1)
				assert.Equal(t, "", tree[0].Name)
				assert.Equal(t, "<p>Classic</p>", tree[0].InnerHTML)
			},
		},
		{
			name:    "whitespace between blocks is dropped",
			content: "<!-- wp:paragraph --><p>a</p><!-- /wp:paragraph -->\n\n<!-- wp:paragraph --><p>b</p><!-- /wp:paragraph -->",
			check: func(t *testing.T, tree []domain.Block) {
				assert.Len(t, tree, 2)
			},
		},
		{
			name:    "malformed attributes",
			content: `<!-- wp:code {"language": } --><pre>x</pre><!-- /wp:code -->`,
			check: func(t *testing.T, tree []domain.Block) {
				require.Len(t, tree, 1)
				assert.Equal(t, domain.BlockCode, tree[0].Name)
				assert.Empty(t, tree[0].Attrs)
			},
		},
		{
			name:    "unclosed block",
			content: `<!-- wp:paragraph --><p>dangling</p>`,
			check: func(t *testing.T, tree []domain.Block) {
				require.Len(t, tree, 1)
				assert.Equal(t, "<p>dangling</p>", tree[0].InnerHTML)
			},
		},
		{
			name:    "stray closer",
			content: `<!-- /wp:list --><!-- wp:paragraph --><p>a</p><!-- /wp:paragraph -->`,
			check: func(t *testing.T, tree []domain.Block) {
				require.Len(t, tree, 1)
				assert.Equal(t, domain.BlockParagraph, tree[0].Name)
			},
		},
		{
			name:    "plain html comment",
			content: `<!-- note --><!-- wp:paragraph --><p>a</p><!-- /wp:paragraph -->`,
			check: func(t *testing.T, tree []domain.Block) {
				require.Len(t, tree, 2)
				assert.Equal(t, "<!-- note -->", tree[0].InnerHTML)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Parse(tt.content))
		})
	}
}

func TestParse_ListItems(t *testing.T) {
	content := `<!-- wp:list --><ul><!-- wp:list-item --><li>First</li><!-- /wp:list-item --><!-- wp:list-item --><li>Second</li><!-- /wp:list-item --></ul><!-- /wp:list -->`

	tree := Parse(content)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].InnerBlocks, 2)
	assert.Equal(t, domain.BlockListItem, tree[0].InnerBlocks[0].Name)
	assert.Equal(t, "Second", StripTags(tree[0].InnerBlocks[1].InnerHTML))
	assert.Equal(t, "<ul></ul>", tree[0].InnerHTML)
}
