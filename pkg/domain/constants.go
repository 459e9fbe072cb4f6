package domain

// Block names as they appear in serialized post content.
const (
	BlockParagraph = "core/paragraph"
	BlockHeading   = "core/heading"
	BlockCode      = "core/code"
	BlockList      = "core/list"
	BlockListItem  = "core/list-item"

	// BlockSteps carries its steps as an attribute array of {text} objects.
	BlockSteps = "forwp-seo/techarticle-steps"
	// BlockStep wraps ordinary blocks that together describe one step.
	BlockStep = "forwp-seo/techarticle-step"
)

// Attribute keys read by the core.
const (
	AttrLevel    = "level"
	AttrLanguage = "language"
	AttrSteps    = "steps"
)

// DefaultCodeLanguage is used when a code block does not declare a language.
const DefaultCodeLanguage = "auto"

// StatusPublish marks a post visible to the public index.
const StatusPublish = "publish"
