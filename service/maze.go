package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-portfolio/maze"
)

const (
	DefaultPreviewSize = 10
	MaxPreviewSize     = 60
)

var ErrSizeOutOfRange = errors.New("maze size out of range")

// MazePreview generates mazes on demand for the preview endpoint.
type MazePreview struct {
	maxSize int
	seed    func() int64
}

// NewMazePreview limits previews to maxSize; a non positive value uses
// MaxPreviewSize.
func NewMazePreview(maxSize int) *MazePreview {
	if maxSize <= 0 {
		maxSize = MaxPreviewSize
	}
	return &MazePreview{
		maxSize: maxSize,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

func (m *MazePreview) Preview(size int, seed int64) (*maze.Grid, int64, error) {
	if size < 1 || size > m.maxSize {
		return nil, 0, fmt.Errorf("%w: %d not in [1, %d]", ErrSizeOutOfRange, size, m.maxSize)
	}
	if seed == 0 {
		seed = m.seed()
	}
	g, err := maze.Generate(size, maze.NewRand(seed))
	if err != nil {
		return nil, 0, err
	}
	return g, seed, nil
}
