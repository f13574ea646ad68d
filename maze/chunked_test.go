package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunked(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		_, err := NewChunked(size, firstChoice{})
		assert.ErrorIs(t, err, ErrInvalidChunkSize)
	}

	m, err := NewChunked(2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m.ChunkSize())
	assert.Zero(t, m.ChunkCount())
}

func TestChunked_ChunkOf(t *testing.T) {
	m, err := NewChunked(8, firstChoice{})
	require.NoError(t, err)

	tests := []struct {
		c    Coord
		want ChunkKey
	}{
		{Coord{X: 0, Z: 0}, ChunkKey{X: 0, Z: 0}},
		{Coord{X: 7, Z: 7}, ChunkKey{X: 0, Z: 0}},
		{Coord{X: 8, Z: 0}, ChunkKey{X: 1, Z: 0}},
		{Coord{X: -1, Z: 0}, ChunkKey{X: -1, Z: 0}},
		{Coord{X: -8, Z: -9}, ChunkKey{X: -1, Z: -2}},
		{Coord{X: -9, Z: 16}, ChunkKey{X: -2, Z: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.ChunkOf(tt.c), "coord %v", tt.c)
	}
}

func TestChunked_EnsureChunk(t *testing.T) {
	m, err := NewChunked(6, NewRand(3))
	require.NoError(t, err)

	k := ChunkKey{X: 2, Z: -1}
	assert.True(t, m.EnsureChunk(k))
	assert.False(t, m.EnsureChunk(k), "second call must not regenerate")
	assert.Equal(t, 1, m.ChunkCount())

	origin := Coord{X: 12, Z: -6}
	reached := Reachable(m, origin)
	assert.Len(t, reached, 36, "a lone chunk is a perfect maze on its own")

	_, ok := m.CellAt(Coord{X: 11, Z: -6})
	assert.False(t, ok, "cells outside generated chunks are unknown")
}

func TestChunked_HomeChunkSpawn(t *testing.T) {
	m, err := NewChunked(4, firstChoice{})
	require.NoError(t, err)
	require.True(t, m.EnsureChunk(ChunkKey{}))

	spawn, ok := m.CellAt(Spawn)
	require.True(t, ok)
	assert.Equal(t, 1, spawn.OpenSides(), "spawn is a leaf")
	assert.True(t, Passable(m, Spawn, East), "spawn opens onto the start cell")
	assert.Len(t, Reachable(m, Spawn), 16)
}

func TestChunked_Stitching(t *testing.T) {
	const size = 5

	m, err := NewChunked(size, NewRand(11))
	require.NoError(t, err)

	a, b := ChunkKey{X: 0, Z: 0}, ChunkKey{X: 1, Z: 0}
	m.EnsureChunk(a)
	m.EnsureChunk(b)

	open := 0
	for z := 0; z < size; z++ {
		left := Coord{X: size - 1, Z: z}
		right := Coord{X: size, Z: z}
		assert.Equal(t, HasWall(m, left, East), HasWall(m, right, West),
			"border wall at row %d is one sided", z)
		if Passable(m, left, East) {
			open++
		}
	}
	assert.Equal(t, 1, open)
	assert.Len(t, Reachable(m, Spawn), 2*size*size)
}

func TestChunked_StitchingAllSides(t *testing.T) {
	m, err := NewChunked(3, NewRand(5))
	require.NoError(t, err)

	// Ring of chunks around the centre, then the centre last so it stitches
	// to all four neighbors.
	for _, k := range []ChunkKey{{X: 0, Z: -1}, {X: 1, Z: 0}, {X: 0, Z: 1}, {X: -1, Z: 0}} {
		require.True(t, m.EnsureChunk(k))
	}
	require.True(t, m.EnsureChunk(ChunkKey{}))

	assert.Len(t, Reachable(m, Spawn), 5*9)
}

func TestChunked_Reveal(t *testing.T) {
	m, err := NewChunked(4, NewRand(9))
	require.NoError(t, err)

	created := m.Reveal(Coord{X: 1, Z: 1}, 2)
	// Cells -1..3 on both axes touch chunks -1 and 0.
	assert.Equal(t, 4, created)
	for _, k := range []ChunkKey{{-1, -1}, {0, -1}, {-1, 0}, {0, 0}} {
		assert.True(t, m.Generated(k), "chunk %v", k)
	}
	assert.Zero(t, m.Reveal(Coord{X: 1, Z: 1}, 2))

	assert.Len(t, Reachable(m, Spawn), 4*16)
}
