package crosspost

import (
	"testing"

	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestBody(t *testing.T) {
	tree := []domain.Block{
		{Name: domain.BlockHeading, Attrs: domain.Attributes{"level": 2}, InnerHTML: "<h2>Title</h2>"},
		{Name: domain.BlockParagraph, InnerHTML: "<p>Body</p>"},
	}
	assert.Equal(t, "## Title\n\nBody", Body(tree))
}

func TestBody_HeadingLevels(t *testing.T) {
	heading := func(level any) domain.Block {
		b := domain.Block{Name: domain.BlockHeading, InnerHTML: "<h2>H</h2>"}
		if level != nil {
			b.Attrs = domain.Attributes{"level": level}
		}
		return b
	}

	assert.Equal(t, "## H", Body([]domain.Block{heading(nil)}))
	assert.Equal(t, "#### H", Body([]domain.Block{heading(4)}))
	assert.Equal(t, "### H", Body([]domain.Block{heading("3")}))
	assert.Equal(t, "###### H", Body([]domain.Block{heading(9)}))
	assert.Equal(t, "# H", Body([]domain.Block{heading(0)}))
}

func TestBody_AllBlockTypes(t *testing.T) {
	tree := []domain.Block{
		{Name: domain.BlockParagraph, InnerHTML: "<p>Intro</p>"},
		{Name: domain.BlockList, InnerBlocks: []domain.Block{
			{Name: domain.BlockListItem, InnerHTML: "<li>one</li>"},
			{Name: domain.BlockListItem, InnerHTML: "<li></li>"},
			{Name: domain.BlockListItem, InnerHTML: "<li>two</li>"},
		}},
		{Name: domain.BlockCode, Attrs: domain.Attributes{"language": "go"}, InnerHTML: "<pre><code>go run .</code></pre>"},
		{Name: domain.BlockSteps, Attrs: domain.Attributes{"steps": []any{
			map[string]any{"text": "Clone"},
			map[string]any{"text": ""},
			"bogus",
			map[string]any{"text": "<b>Build</b>"},
		}}},
		{Name: "core/image", InnerHTML: "<figure>ignored</figure>"},
		{Name: domain.BlockStep, InnerBlocks: []domain.Block{
			{Name: domain.BlockHeading, InnerHTML: "<h3>Step</h3>"},
			{Name: domain.BlockParagraph, InnerHTML: "<p>Do it</p>"},
			{Name: domain.BlockCode, Attrs: domain.Attributes{"language": "sh"}, InnerHTML: "<code>make</code>"},
			{Name: domain.BlockList, InnerBlocks: []domain.Block{{Name: domain.BlockListItem, InnerHTML: "<li>check</li>"}}},
			{Name: "core/image"},
		}},
	}

	want := "Intro\n\n" +
		"- one\n- two\n\n" +
		"```go\ngo run .\n```\n\n" +
		"1. Clone\n2. Build\n\n" +
		"### Step\n\n" +
		"Do it\n\n" +
		"```\nmake\n```\n\n" +
		"- check"
	assert.Equal(t, want, Body(tree))
}

func TestBody_CodeWithoutLanguage(t *testing.T) {
	tree := []domain.Block{{Name: domain.BlockCode, InnerHTML: "<code>x &lt; y</code>"}}
	assert.Equal(t, "```\nx < y\n```", Body(tree))
}

func TestBody_SkipsEmptyBlocks(t *testing.T) {
	tree := []domain.Block{
		{Name: domain.BlockParagraph, InnerHTML: "<p>a</p>"},
		{Name: domain.BlockParagraph, InnerHTML: "<p></p>"},
		{Name: domain.BlockSteps},
		{Name: domain.BlockList},
		{Name: domain.BlockParagraph, InnerHTML: "<p>b</p>"},
	}
	assert.Equal(t, "a\n\nb", Body(tree))
}

func TestMarkdown_EmptyBody(t *testing.T) {
	post := &domain.Post{Title: "Nothing", Permalink: "https://e.co/n"}
	assert.Equal(t, "# Nothing\n\nSource: https://e.co/n", Markdown(post))
}

func TestMarkdown_TopLevelOnly(t *testing.T) {
	content := `<!-- wp:group --><div><!-- wp:paragraph --><p>hidden</p><!-- /wp:paragraph --></div><!-- /wp:group -->
<!-- wp:paragraph --><p>shown</p><!-- /wp:paragraph -->`
	post := &domain.Post{Title: "T", Permalink: "u", Content: content}

	assert.Len(t, blocks.Tree(post), 2)
	assert.Equal(t, "# T\n\nshown\n\nSource: u", Markdown(post))
}
