package blocks

import (
	"github.com/aretw0/techseo/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// HeadingAttrs is the typed view of a heading block's attributes.
type HeadingAttrs struct {
	Level int `mapstructure:"level"`
}

// CodeAttrs is the typed view of a code block's attributes.
type CodeAttrs struct {
	Language string `mapstructure:"language"`
}

// StepItem is one entry of a steps container's "steps" attribute.
type StepItem struct {
	Text string `mapstructure:"text"`
}

// StepsAttrs is the typed view of a steps container's attributes.
type StepsAttrs struct {
	Steps []StepItem `mapstructure:"steps"`
}

// DecodeAttrs decodes a block's attribute bag into out.
// Input is weakly typed so "3" and 3 both decode into an int field.
func DecodeAttrs(attrs domain.Attributes, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(attrs))
}

// HeadingLevel returns the heading level of b, or def when it is absent or malformed.
func HeadingLevel(b domain.Block, def int) int {
	if _, ok := b.Attr(domain.AttrLevel); !ok {
		return def
	}
	var attrs HeadingAttrs
	if err := DecodeAttrs(b.Attrs, &attrs); err != nil {
		return def
	}
	return attrs.Level
}

// CodeLanguage returns the declared language of b, or def when none is declared.
func CodeLanguage(b domain.Block, def string) string {
	var attrs CodeAttrs
	if err := DecodeAttrs(b.Attrs, &attrs); err != nil || attrs.Language == "" {
		return def
	}
	return attrs.Language
}

// StepTexts returns the stripped, non-empty texts of a steps container's
// "steps" attribute in order. Entries that are not {text} objects are skipped.
func StepTexts(b domain.Block) []string {
	if _, ok := b.Attr(domain.AttrSteps); !ok {
		return nil
	}
	// Decoding keeps the entries that fit; the rest stay zero and drop out below.
	var attrs StepsAttrs
	_ = DecodeAttrs(b.Attrs, &attrs)

	var texts []string
	for _, step := range attrs.Steps {
		if text := StripTags(step.Text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

// Clamp bounds a heading level to the 1..6 range.
func Clamp(level int) int {
	return max(1, min(6, level))
}
