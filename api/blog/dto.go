// Package blog serves posts, categories and the sitemap.
package blog

import (
	"encoding/xml"
	"time"

	"github.com/beka-birhanu/vinom-portfolio/content"
)

// PostSummary is a list entry without the rendered body.
type PostSummary struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	ReadTime string    `json:"readTime"`
	Excerpt  string    `json:"excerpt"`
	Link     string    `json:"link,omitempty"`
}

// PostResponse is a full post with its table of contents.
type PostResponse struct {
	PostSummary
	HTML string            `json:"html"`
	TOC  []content.Heading `json:"toc"`
}

func summary(p *content.Post) PostSummary {
	return PostSummary{
		Slug:     p.Slug,
		Title:    p.Title,
		Date:     p.Date,
		Category: p.Category,
		ReadTime: p.ReadTime,
		Excerpt:  p.Excerpt,
		Link:     p.Link,
	}
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}
