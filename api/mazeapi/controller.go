package mazeapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-portfolio/maze"
	"github.com/beka-birhanu/vinom-portfolio/service"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
	"github.com/gin-gonic/gin"
)

// Controller serves maze previews. Nothing is stored between requests.
type Controller struct {
	previewer   i.MazePreviewer
	defaultSize int
}

// NewController uses defaultSize when a request names no size.
func NewController(p i.MazePreviewer, defaultSize int) *Controller {
	if defaultSize <= 0 {
		defaultSize = service.DefaultPreviewSize
	}
	return &Controller{previewer: p, defaultSize: defaultSize}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/maze", c.generate)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {}

func (c *Controller) generate(ctx *gin.Context) {
	var query MazeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, given := ctx.GetQuery("size"); !given {
		query.Size = c.defaultSize
	}

	g, seed, err := c.previewer.Preview(query.Size, query.Seed)
	if err != nil {
		if errors.Is(err, service.ErrSizeOutOfRange) || errors.Is(err, maze.ErrInvalidSize) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate maze"})
		return
	}

	ctx.JSON(http.StatusOK, toResponse(g, seed))
}

func toResponse(g *maze.Grid, seed int64) MazeResponse {
	rows := make([][]CellResponse, g.Size)
	for z := range rows {
		rows[z] = make([]CellResponse, g.Size)
		for x := range rows[z] {
			cell, _ := g.CellAt(maze.Coord{X: x, Z: z})
			rows[z][x] = CellResponse{
				North: cell.North,
				East:  cell.East,
				South: cell.South,
				West:  cell.West,
			}
		}
	}
	return MazeResponse{
		Size:     g.Size,
		Seed:     seed,
		Passages: g.Passages(),
		Cells:    rows,
		ASCII:    g.String(),
	}
}
