package schema

import (
	"strings"

	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/aretw0/techseo/pkg/domain"
)

// AboutFilter post-processes the "about" list before it is attached.
// It may append, drop or reorder entries.
type AboutFilter func(about []Thing, post *domain.Post) []Thing

// Option configures an Extractor.
type Option func(*Extractor)

// WithAboutFilter registers a filter applied to the tag-derived "about" entries.
func WithAboutFilter(f AboutFilter) Option {
	return func(e *Extractor) {
		if f != nil {
			e.about = f
		}
	}
}

// Extractor builds TechArticle documents. It holds no per-post state and is
// safe for concurrent use.
type Extractor struct {
	about AboutFilter
}

// NewExtractor creates an Extractor. Without options the about list is used as is.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		about: func(about []Thing, _ *domain.Post) []Thing { return about },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract builds the TechArticle for post. The second return value is false
// when the post does not qualify or when no code or step text could be extracted.
func (e *Extractor) Extract(post *domain.Post) (*TechArticle, bool) {
	if post == nil {
		return nil, false
	}

	flat := blocks.Flatten(blocks.Tree(post))
	if !IsValid(flat) {
		return nil, false
	}

	code := CodeSamples(flat)
	steps := Steps(flat)
	if len(code) == 0 || len(steps) == 0 {
		return nil, false
	}

	article := &TechArticle{
		Context:      Context,
		Type:         TypeTechArticle,
		Headline:     post.Title,
		SoftwareCode: code,
		HasPart: []HowTo{{
			Type: TypeHowTo,
			Step: steps,
		}},
	}

	if name := strings.TrimSpace(post.AuthorName); name != "" {
		article.Author = &Person{Type: TypePerson, Name: name}
	}

	if about := e.about(Tags(post.Tags), post); len(about) > 0 {
		article.About = about
	}

	return article, true
}

// CodeSamples collects every non-empty code block of a flattened list.
func CodeSamples(flat []domain.Block) []SoftwareCode {
	var out []SoftwareCode
	for _, b := range flat {
		if b.Name != domain.BlockCode {
			continue
		}
		text := blocks.StripTags(b.InnerHTML)
		if text == "" {
			continue
		}
		out = append(out, SoftwareCode{
			Type:                TypeSourceCode,
			CodeSampleType:      CodeSampleFull,
			ProgrammingLanguage: blocks.CodeLanguage(b, domain.DefaultCodeLanguage),
			Text:                text,
		})
	}
	return out
}

// Steps collects how-to steps in document order. A steps container yields one
// step per non-empty attribute entry; a step block yields at most one step
// combining the text of its whole subtree.
func Steps(flat []domain.Block) []Step {
	var out []Step
	for _, b := range flat {
		switch b.Name {
		case domain.BlockSteps:
			for _, text := range blocks.StepTexts(b) {
				out = append(out, Step{Type: TypeHowToStep, Text: text})
			}
		case domain.BlockStep:
			if text := StepText(b.InnerBlocks); text != "" {
				out = append(out, Step{Type: TypeHowToStep, Text: text})
			}
		}
	}
	return out
}

var stepTextBlocks = []string{
	domain.BlockHeading,
	domain.BlockParagraph,
	domain.BlockList,
	domain.BlockCode,
}

// StepText joins, with newlines, the stripped text of the heading, paragraph,
// list and code blocks found in children, each followed by the text of its own
// nested blocks.
func StepText(children []domain.Block) string {
	return stepText(children, 0)
}

func stepText(children []domain.Block, depth int) string {
	if depth >= blocks.MaxDepth {
		return ""
	}

	var parts []string
	for _, b := range children {
		if b.Is(stepTextBlocks...) {
			if text := blocks.StripTags(b.InnerHTML); text != "" {
				parts = append(parts, text)
			}
		}
		if len(b.InnerBlocks) > 0 {
			if nested := stepText(b.InnerBlocks, depth+1); nested != "" {
				parts = append(parts, nested)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// Tags turns tag names into "about" entries, dropping blanks and duplicates
// while keeping first-occurrence order.
func Tags(names []string) []Thing {
	seen := make(map[string]struct{}, len(names))
	out := make([]Thing, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Thing{Type: TypeThing, Name: name})
	}
	return out
}
