// Package content loads the site's markdown posts. Each post is a file with a
// YAML front matter block; the file name without ".md" is the post slug.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// A table of contents is only offered for posts with this many headings.
const minTOCHeadings = 3

var (
	ErrNoFrontMatter = errors.New("post has no front matter")
	ErrMissingTitle  = errors.New("post has no title")
	ErrBadDate       = errors.New("post date not recognised")
	ErrPostNotFound  = errors.New("post not found")
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Heading is an h2 or h3 entry of a post's table of contents.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Post is one parsed article.
type Post struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	ReadTime string    `json:"readTime"`
	Excerpt  string    `json:"excerpt"`
	Link     string    `json:"link,omitempty"`
	Markdown string    `json:"-"`
	HTML     string    `json:"html"`
	Headings []Heading `json:"-"`
}

// TOC returns the headings to list beside the post, or nil when there are
// too few to be worth showing.
func (p *Post) TOC() []Heading {
	if len(p.Headings) < minTOCHeadings {
		return nil
	}
	return p.Headings
}

type frontMatter struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	ReadTime string `yaml:"readTime"`
	Excerpt  string `yaml:"excerpt"`
	Link     string `yaml:"link"`
}

// Parse reads a post from raw file contents.
func Parse(slug string, raw []byte) (*Post, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return nil, ErrMissingTitle
	}
	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, err
	}

	doc := markdown.Parser().Parse(text.NewReader(body))
	var html bytes.Buffer
	if err := markdown.Renderer().Render(&html, body, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &Post{
		Slug:     slug,
		Title:    fm.Title,
		Date:     date,
		Category: fm.Category,
		ReadTime: fm.ReadTime,
		Excerpt:  fm.Excerpt,
		Link:     fm.Link,
		Markdown: string(body),
		HTML:     html.String(),
		Headings: headings(doc, body),
	}, nil
}

// splitFrontMatter separates the leading "---" delimited block from the body.
func splitFrontMatter(raw []byte) (meta, body []byte, err error) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	if !bytes.HasPrefix(raw, []byte("---\n")) {
		return nil, nil, ErrNoFrontMatter
	}
	rest := raw[len("---\n"):]

	for off := 0; off < len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		line := rest[off:]
		next := len(rest)
		if end >= 0 {
			line = rest[off : off+end]
			next = off + end + 1
		}
		if string(bytes.TrimRight(line, " \t")) == "---" {
			return rest[:off], rest[next:], nil
		}
		off = next
	}
	return nil, nil, ErrNoFrontMatter
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

func headings(doc ast.Node, src []byte) []Heading {
	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 2 || h.Level == 3 {
			var id string
			if v, ok := h.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			out = append(out, Heading{ID: id, Text: nodeText(h, src), Level: h.Level})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(nodeText(c, src))
		}
	}
	return b.String()
}
