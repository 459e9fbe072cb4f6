package domain

// Attributes is the open attribute bag of a block.
// Values are whatever the serialized JSON decoded to (string, float64, bool, []any, map[string]any).
type Attributes map[string]any

// Block represents one node of a post's structured content.
type Block struct {
	// Name is the namespaced block type, e.g. "core/paragraph".
	// Free-form markup between blocks has an empty name.
	Name string `json:"blockName" yaml:"name" mapstructure:"name"`

	Attrs Attributes `json:"attrs,omitempty" yaml:"attrs,omitempty" mapstructure:"attrs"`

	// InnerHTML is the block's own markup, without the markup of nested blocks.
	InnerHTML string `json:"innerHTML" yaml:"html" mapstructure:"html"`

	InnerBlocks []Block `json:"innerBlocks,omitempty" yaml:"blocks,omitempty" mapstructure:"blocks"`
}

// Is reports whether the block has one of the given names.
func (b Block) Is(names ...string) bool {
	for _, n := range names {
		if b.Name == n {
			return true
		}
	}
	return false
}

// Attr returns the raw attribute value and whether it was present.
func (b Block) Attr(key string) (any, bool) {
	if b.Attrs == nil {
		return nil, false
	}
	v, ok := b.Attrs[key]
	return v, ok
}
