// Package water builds the subdivided plane the sea surface is drawn on.
package water

import "fmt"

// Defaults for the sea surface mesh.
const (
	DefaultSize     = 2.0
	DefaultSegments = 512
)

// Grid holds water surface geometry ready for GPU upload. The plane lies in
// XZ at Y=0, centered on the origin; the vertex shader displaces Y.
type Grid struct {
	Vertices []float32 // Flat array: x,y,z for each vertex
	Indices  []uint32  // Triangle list, counter-clockwise seen from +Y

	Width     float32
	Depth     float32
	SegmentsX int
	SegmentsZ int
}

// BuildGrid creates a width x depth plane split into segX x segZ quads.
func BuildGrid(width, depth float32, segX, segZ int) (*Grid, error) {
	if segX < 1 || segZ < 1 {
		return nil, fmt.Errorf("invalid segment count %dx%d", segX, segZ)
	}
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("invalid plane size %gx%g", width, depth)
	}

	cols := segX + 1
	rows := segZ + 1

	g := &Grid{
		Vertices:  make([]float32, 0, cols*rows*3),
		Indices:   make([]uint32, 0, segX*segZ*6),
		Width:     width,
		Depth:     depth,
		SegmentsX: segX,
		SegmentsZ: segZ,
	}

	stepX := width / float32(segX)
	stepZ := depth / float32(segZ)
	for iz := 0; iz < rows; iz++ {
		z := -depth/2 + float32(iz)*stepZ
		for ix := 0; ix < cols; ix++ {
			x := -width/2 + float32(ix)*stepX
			g.Vertices = append(g.Vertices, x, 0, z)
		}
	}

	for iz := 0; iz < segZ; iz++ {
		for ix := 0; ix < segX; ix++ {
			a := uint32(iz*cols + ix)
			b := uint32((iz+1)*cols + ix)
			c := b + 1
			d := a + 1
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	return g, nil
}

// VertexCount returns the number of vertices.
func (g *Grid) VertexCount() int {
	return len(g.Vertices) / 3
}

// Vertex returns the position of vertex i.
func (g *Grid) Vertex(i int) [3]float32 {
	return [3]float32{g.Vertices[i*3], g.Vertices[i*3+1], g.Vertices[i*3+2]}
}
