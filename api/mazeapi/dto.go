// Package mazeapi serves freshly generated mazes for the site's preview.
package mazeapi

// MazeQuery selects the preview maze. A zero seed picks a random one.
type MazeQuery struct {
	Size int   `form:"size"`
	Seed int64 `form:"seed"`
}

// CellResponse lists the walls present around a cell.
type CellResponse struct {
	North bool `json:"n"`
	East  bool `json:"e"`
	South bool `json:"s"`
	West  bool `json:"w"`
}

// MazeResponse is a generated maze, row by row from north to south.
type MazeResponse struct {
	Size     int              `json:"size"`
	Seed     int64            `json:"seed"`
	Passages int              `json:"passages"`
	Cells    [][]CellResponse `json:"cells"`
	ASCII    string           `json:"ascii"`
}
