package tube

// Quad layout for slice i and corner j, seen from outside the tube with
// slices running left to right:
//
//	(i,j+1) +------+ (i+1,j+1)
//	        | \    |
//	        |   \  |
//	(i,j)   +------+ (i+1,j)
//
// Both triangles wind counter-clockwise around the outward normal:
// (i,j) (i,j+1) (i+1,j) and (i+1,j+1) (i+1,j) (i,j+1).

// emitTriangles appends two triangles per quad face.
func (g *generator) emitTriangles() {
	bands := g.connections()
	g.indices = make([]uint32, 0, bands*g.c*6)
	for i := 0; i < bands; i++ {
		for j := 0; j < g.c; j++ {
			a := g.vertex(i, j, 0)
			b := g.vertex(i, j, 1)
			c := g.vertex(i+1, j, 0)
			d := g.vertex(i+1, j, 1)
			g.indices = append(g.indices,
				a, b, c,
				d, c, b,
			)
		}
	}
}

// emitWireframe appends the ring edge of every slice and the longitudinal
// edge from every corner to the same corner of the next slice.
func (g *generator) emitWireframe() {
	bands := g.connections()
	g.indices = make([]uint32, 0, 2*(g.n+bands)*g.c)
	for i := 0; i < g.n; i++ {
		for j := 0; j < g.c; j++ {
			g.indices = append(g.indices, g.vertex(i, j, 0), g.vertex(i, j, 1))
		}
	}
	for i := 0; i < bands; i++ {
		for j := 0; j < g.c; j++ {
			g.indices = append(g.indices, g.vertex(i, j, 0), g.vertex(i+1, j, 0))
		}
	}
}

// skeletonIndices joins n centreline points into line segments.
func skeletonIndices(n int, closed bool) []uint32 {
	segments := n - 1
	if closed {
		segments = n
	}
	indices := make([]uint32, 0, 2*segments)
	for i := 0; i < segments; i++ {
		indices = append(indices, uint32(i), uint32((i+1)%n))
	}
	return indices
}
