package blocks

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aretw0/techseo/pkg/domain"
)

const defaultNamespace = "core/"

// attrsEnd matches the end of a JSON attribute object followed by the comment terminator.
var attrsEnd = regexp.MustCompile(`\}\s+(/)?-->`)

type tokenKind int

const (
	tokenOpener tokenKind = iota
	tokenCloser
	tokenVoid
)

type token struct {
	kind  tokenKind
	name  string
	attrs domain.Attributes
	start int
	end   int
}

type frame struct {
	block domain.Block
	html  strings.Builder
}

// Parse converts serialized block content into a tree.
// It never fails: malformed attribute JSON yields empty attributes and
// unclosed blocks are closed at the end of the input.
func Parse(content string) []domain.Block {
	var (
		out   []domain.Block
		stack []*frame
		pos   int
	)

	emit := func(b domain.Block) {
		if len(stack) == 0 {
			out = append(out, b)
			return
		}
		top := stack[len(stack)-1]
		top.block.InnerBlocks = append(top.block.InnerBlocks, b)
	}

	text := func(s string) {
		if s == "" {
			return
		}
		if len(stack) == 0 {
			if strings.TrimSpace(s) != "" {
				out = append(out, domain.Block{InnerHTML: s})
			}
			return
		}
		stack[len(stack)-1].html.WriteString(s)
	}

	pop := func() {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		top.block.InnerHTML = top.html.String()
		emit(top.block)
	}

	for {
		tok, ok := nextToken(content, pos)
		if !ok {
			text(content[pos:])
			break
		}
		text(content[pos:tok.start])
		pos = tok.end

		switch tok.kind {
		case tokenVoid:
			emit(domain.Block{Name: tok.name, Attrs: tok.attrs})
		case tokenOpener:
			stack = append(stack, &frame{block: domain.Block{Name: tok.name, Attrs: tok.attrs}})
		case tokenCloser:
			if !isOpen(stack, tok.name) {
				continue
			}
			// Close everything opened after the matching opener.
			for len(stack) > 0 {
				name := stack[len(stack)-1].block.Name
				pop()
				if name == tok.name {
					break
				}
			}
		}
	}

	for len(stack) > 0 {
		pop()
	}

	return out
}

// nextToken finds the next block delimiter at or after pos.
func nextToken(s string, pos int) (token, bool) {
	for {
		idx := strings.Index(s[pos:], "<!--")
		if idx < 0 {
			return token{}, false
		}
		start := pos + idx
		if tok, ok := readToken(s, start); ok {
			return tok, true
		}
		pos = start + len("<!--")
	}
}

func readToken(s string, start int) (token, bool) {
	i := start + len("<!--")
	i = skipSpace(s, i)
	if i == start+len("<!--") {
		return token{}, false
	}

	tok := token{start: start, kind: tokenOpener}
	if i < len(s) && s[i] == '/' {
		tok.kind = tokenCloser
		i++
	}
	if !strings.HasPrefix(s[i:], "wp:") {
		return token{}, false
	}
	i += len("wp:")

	nameStart := i
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	name := s[nameStart:i]
	if name == "" || !isLowerAlpha(name[0]) {
		return token{}, false
	}
	if !strings.Contains(name, "/") {
		name = defaultNamespace + name
	}
	tok.name = name

	afterName := skipSpace(s, i)
	if afterName == i {
		return token{}, false
	}
	i = afterName

	if tok.kind != tokenCloser && i < len(s) && s[i] == '{' {
		loc := attrsEnd.FindStringSubmatchIndex(s[i:])
		if loc == nil {
			return token{}, false
		}
		raw := s[i : i+loc[0]+1]
		tok.attrs = decodeAttrs(raw)
		if loc[2] >= 0 {
			tok.kind = tokenVoid
		}
		tok.end = i + loc[1]
		return tok, true
	}

	if tok.kind != tokenCloser && strings.HasPrefix(s[i:], "/-->") {
		tok.kind = tokenVoid
		tok.end = i + len("/-->")
		return tok, true
	}
	if strings.HasPrefix(s[i:], "-->") {
		tok.end = i + len("-->")
		return tok, true
	}
	return token{}, false
}

func isOpen(stack []*frame, name string) bool {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].block.Name == name {
			return true
		}
	}
	return false
}

func decodeAttrs(raw string) domain.Attributes {
	attrs := domain.Attributes{}
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return domain.Attributes{}
	}
	return attrs
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
		default:
			return i
		}
	}
	return i
}

func isLowerAlpha(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isNameByte(c byte) bool {
	return isLowerAlpha(c) || (c >= '0' && c <= '9') || c == '_' || c == '-' || c == '/'
}
