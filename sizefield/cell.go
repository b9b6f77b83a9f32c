package sizefield

import (
	"github.com/aukilabs/ymir/geom"
)

// Cell is a node of the refinement tree. It covers the cube
// [Center-Half, Center+Half] on each active axis; planar fields pin the
// Z coordinate to 0 and only populate child slots 0..3.
type Cell struct {
	Center geom.Vector3
	Half   float64

	// HOpt is the target mesh size recorded for this cell. It starts at
	// the cell's own edge length; refinement keeps it within a factor
	// of two of the edge.
	HOpt float64

	children [8]*Cell
	parent   *Cell

	cutBoundary bool
	isInner     bool
	pInner      bool
	oldCell     bool
}

// init sets the cell state from the two opposite box corners, the way a
// freshly subdivided cell is born: the half-edge comes from the first
// axis (all cells are cubical) and the target size starts at the cell's
// own edge length.
func (c *Cell) init(x1, x2 [3]float64) {
	c.Half = 0.5 * (x2[0] - x1[0])
	c.Center = geom.Vector3{
		X: 0.5 * (x1[0] + x2[0]),
		Y: 0.5 * (x1[1] + x2[1]),
		Z: 0.5 * (x1[2] + x2[2]),
	}
	c.HOpt = 2 * c.Half

	c.children = [8]*Cell{}
	c.parent = nil
	c.cutBoundary = false
	c.isInner = false
	c.pInner = false
	c.oldCell = false
}

// Midpoint returns the cell center.
func (c *Cell) Midpoint() geom.Vector3 {
	return c.Center
}

// HasChildren reports whether any child slot is occupied.
func (c *Cell) HasChildren() bool {
	for i := 0; i < 8; i++ {
		if c.children[i] != nil {
			return true
		}
	}
	return false
}

// Child returns the i-th child link, i in [0, 7]. Nil when absent.
func (c *Cell) Child(i int) *Cell {
	return c.children[i]
}

// Parent returns the parent cell, nil for the root.
func (c *Cell) Parent() *Cell {
	return c.parent
}

// Box returns the axis-aligned box covered by the cell.
func (c *Cell) Box() geom.Box {
	return geom.NewBoxAround(c.Center, c.Half)
}

// CutBoundary reports whether the cell straddles the domain boundary.
func (c *Cell) CutBoundary() bool {
	return c.cutBoundary
}

// IsInner reports whether the cell lies entirely in the domain interior.
func (c *Cell) IsInner() bool {
	return c.isInner
}

// PInner reports whether the cell center lies in the domain interior.
func (c *Cell) PInner() bool {
	return c.pInner
}

// childIndex returns the child slot holding p: bit i is set iff p
// exceeds the center on axis i. Only the first dim axes participate.
func (c *Cell) childIndex(p geom.Vector3, dim int) int {
	childnr := 0
	if p.X > c.Center.X {
		childnr += 1
	}
	if p.Y > c.Center.Y {
		childnr += 2
	}
	if dim == 3 && p.Z > c.Center.Z {
		childnr += 4
	}
	return childnr
}
