package i

import (
	"github.com/beka-birhanu/vinom-portfolio/content"
	"github.com/beka-birhanu/vinom-portfolio/maze"
)

// PostStore serves parsed blog posts.
type PostStore interface {
	Posts() []*content.Post
	ByCategory(category string) []*content.Post
	Categories() []string
	BySlug(slug string) (*content.Post, error)
}

// MazePreviewer generates throwaway mazes for the preview endpoint.
type MazePreviewer interface {
	// Preview returns a maze of size and the seed used. Seed 0 picks one.
	Preview(size int, seed int64) (*maze.Grid, int64, error)
}
