package blog

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-portfolio/content"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
	"github.com/gin-gonic/gin"
)

const (
	sitemapNS   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	dateLayout  = "2006-01-02"
	articlesURL = "/Articles"
)

// Pages listed in the sitemap besides the articles.
var staticPages = []struct {
	path, freq, priority string
}{
	{"/", "monthly", "1.0"},
	{articlesURL, "weekly", "0.8"},
	{"/MazeGame", "yearly", "0.5"},
}

// Controller serves blog posts.
type Controller struct {
	posts   i.PostStore
	siteURL string
}

// NewController serves posts from store. siteURL is the public origin used
// in sitemap links.
func NewController(store i.PostStore, siteURL string) *Controller {
	return &Controller{
		posts:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

// RegisterRoot registers routes outside the API base URL.
func (c *Controller) RegisterRoot(route gin.IRoutes) {
	route.GET("/sitemap.xml", c.sitemap)
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	posts := route.Group("/posts")
	{
		posts.GET("", c.list)
		posts.GET("/:slug", c.bySlug)
	}
	route.GET("/categories", c.categories)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {}

// list returns post summaries, optionally filtered by ?category=.
func (c *Controller) list(ctx *gin.Context) {
	var posts []*content.Post
	if category := ctx.Query("category"); category != "" {
		posts = c.posts.ByCategory(category)
	} else {
		posts = c.posts.Posts()
	}

	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summary(p))
	}
	ctx.JSON(http.StatusOK, gin.H{"posts": out})
}

func (c *Controller) bySlug(ctx *gin.Context) {
	p, err := c.posts.BySlug(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, content.ErrPostNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load post"})
		return
	}

	toc := p.TOC()
	if toc == nil {
		toc = []content.Heading{}
	}
	ctx.JSON(http.StatusOK, PostResponse{
		PostSummary: summary(p),
		HTML:        p.HTML,
		TOC:         toc,
	})
}

func (c *Controller) categories(ctx *gin.Context) {
	cats := c.posts.Categories()
	if cats == nil {
		cats = []string{}
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (c *Controller) sitemap(ctx *gin.Context) {
	posts := c.posts.Posts()

	var newest string
	if len(posts) > 0 {
		newest = posts[0].Date.Format(dateLayout)
	}

	set := urlSet{XMLNS: sitemapNS}
	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        c.siteURL + page.path,
			LastMod:    newest,
			ChangeFreq: page.freq,
			Priority:   page.priority,
		})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        c.siteURL + articlesURL + "/" + p.Slug,
			LastMod:    p.Date.Format(dateLayout),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}
