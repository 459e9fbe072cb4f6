package crosspost

import "strings"

// Platform names a cross-posting target.
type Platform string

const (
	DevTo    Platform = "devto"
	Medium   Platform = "medium"
	LinkedIn Platform = "linkedin"
	X        Platform = "x"
	Bluesky  Platform = "bsky"
)

// Platforms lists every supported platform in a stable order.
func Platforms() []Platform {
	return []Platform{DevTo, Medium, LinkedIn, X, Bluesky}
}

// ParsePlatform resolves a platform name case-insensitively.
func ParsePlatform(name string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case DevTo, Medium, LinkedIn, X, Bluesky:
		return p, true
	}
	return "", false
}

// Limits maps a short-form platform to its character limit.
type Limits map[Platform]int

// DefaultLimits returns the stock character limits.
func DefaultLimits() Limits {
	return Limits{
		LinkedIn: 400,
		X:        280,
		Bluesky:  300,
	}
}

// Long reports whether p receives Markdown rather than a limited summary.
func (p Platform) Long() bool {
	return p == DevTo || p == Medium
}
