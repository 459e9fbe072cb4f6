// Package llms builds the plain-text llms.txt index of technical articles.
package llms

import (
	"strings"
	"time"
)

// MaxItems caps how many posts are considered for the index.
const MaxItems = 200

// TimeLayout formats the "Updated" stamp.
const TimeLayout = "2006-01-02 15:04:05"

// Site identifies the publishing site.
type Site struct {
	Name string `yaml:"name" json:"name"`
	Home string `yaml:"home" json:"home"`
}

// Item is one listed page.
type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Build renders the index. It returns the empty string when items is empty.
func Build(site Site, items []Item, now time.Time) string {
	if len(items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("# " + heading(site) + "\n\n")
	sb.WriteString("## Source\n" + site.Home + "\n\n")
	sb.WriteString("## TechArticle Pages\n")
	for _, item := range items {
		sb.WriteString("- " + item.Title + " — " + item.URL + "\n")
	}
	sb.WriteString("\n## Updated\n")
	sb.WriteString(now.UTC().Format(TimeLayout) + " UTC")
	return sb.String()
}

func heading(site Site) string {
	if name := strings.TrimSpace(site.Name); name != "" {
		return name + " TechArticle"
	}
	return "TechArticle"
}
