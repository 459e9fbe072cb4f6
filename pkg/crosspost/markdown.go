package crosspost

import (
	"strconv"
	"strings"

	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/aretw0/techseo/pkg/domain"
)

const (
	defaultHeadingLevel     = 2
	defaultStepHeadingLevel = 3
	fence                   = "```"
)

// Markdown renders the post as a titled Markdown document followed by a
// source link. Sections are separated by a blank line and empty ones are dropped.
func Markdown(post *domain.Post) string {
	sections := []string{
		"# " + post.Title,
		Body(blocks.Tree(post)),
		"Source: " + post.Permalink,
	}

	var kept []string
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}

// Body renders the top-level blocks of tree. Nested blocks are only reached
// through the list and step rules; unknown block types are skipped.
func Body(tree []domain.Block) string {
	var w writer
	for _, b := range tree {
		switch b.Name {
		case domain.BlockParagraph:
			w.text(b)
		case domain.BlockHeading:
			w.heading(b, defaultHeadingLevel)
		case domain.BlockList:
			w.list(b)
		case domain.BlockCode:
			w.code(b, blocks.CodeLanguage(b, ""))
		case domain.BlockSteps:
			w.numbered(blocks.StepTexts(b))
		case domain.BlockStep:
			w.step(b)
		}
	}
	return strings.TrimSpace(strings.Join(w.lines, "\n"))
}

// writer collects output lines. Every rendered block is followed by one blank line.
type writer struct {
	lines []string
}

func (w *writer) block(lines ...string) {
	if len(lines) == 0 {
		return
	}
	w.lines = append(w.lines, lines...)
	w.lines = append(w.lines, "")
}

func (w *writer) text(b domain.Block) {
	if text := blocks.StripTags(b.InnerHTML); text != "" {
		w.block(text)
	}
}

func (w *writer) heading(b domain.Block, def int) {
	text := blocks.StripTags(b.InnerHTML)
	if text == "" {
		return
	}
	level := blocks.Clamp(blocks.HeadingLevel(b, def))
	w.block(strings.Repeat("#", level) + " " + text)
}

func (w *writer) list(b domain.Block) {
	var items []string
	for _, item := range b.InnerBlocks {
		if text := blocks.StripTags(item.InnerHTML); text != "" {
			items = append(items, "- "+text)
		}
	}
	w.block(items...)
}

func (w *writer) code(b domain.Block, lang string) {
	code := blocks.StripTags(b.InnerHTML)
	if code == "" {
		return
	}
	w.block(fence+lang, code, fence)
}

func (w *writer) numbered(texts []string) {
	items := make([]string, 0, len(texts))
	for i, text := range texts {
		items = append(items, strconv.Itoa(i+1)+". "+text)
	}
	w.block(items...)
}

// step renders the direct children of a step block.
func (w *writer) step(b domain.Block) {
	for _, child := range b.InnerBlocks {
		switch child.Name {
		case domain.BlockHeading:
			w.heading(child, defaultStepHeadingLevel)
		case domain.BlockParagraph:
			w.text(child)
		case domain.BlockCode:
			w.code(child, "")
		case domain.BlockList:
			w.list(child)
		}
	}
}
