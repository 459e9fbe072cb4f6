package schema

const (
	Context = "https://schema.org"

	TypeTechArticle = "TechArticle"
	TypePerson      = "Person"
	TypeSourceCode  = "SoftwareSourceCode"
	TypeHowTo       = "HowTo"
	TypeHowToStep   = "HowToStep"
	TypeThing       = "Thing"
	CodeSampleFull  = "full"
)

// TechArticle is the JSON-LD document emitted for a qualifying post.
type TechArticle struct {
	Context      string         `json:"@context"`
	Type         string         `json:"@type"`
	Headline     string         `json:"headline"`
	Author       *Person        `json:"author,omitempty"`
	SoftwareCode []SoftwareCode `json:"softwareCode"`
	HasPart      []HowTo        `json:"hasPart"`
	About        []Thing        `json:"about,omitempty"`
}

// Person is the article author.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// SoftwareCode is one code sample of the article.
type SoftwareCode struct {
	Type                string `json:"@type"`
	CodeSampleType      string `json:"codeSampleType"`
	ProgrammingLanguage string `json:"programmingLanguage"`
	Text                string `json:"text"`
}

// HowTo groups the ordered steps of the article.
type HowTo struct {
	Type string `json:"@type"`
	Step []Step `json:"step"`
}

// Step is one how-to step, as plain text.
type Step struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// Thing is a topical entry of the "about" list.
type Thing struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	SameAs string `json:"sameAs,omitempty"`
}

// Steps returns the steps of the first HowTo part.
func (a *TechArticle) Steps() []Step {
	if a == nil || len(a.HasPart) == 0 {
		return nil
	}
	return a.HasPart[0].Step
}
