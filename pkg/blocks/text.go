package blocks

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// StripTags reduces markup to trimmed plain text. Script and style bodies are
// dropped and HTML entities are decoded.
func StripTags(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(markup)))
}
