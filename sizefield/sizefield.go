// Package sizefield implements the local mesh-size field consulted by
// an unstructured mesh generator: an adaptively refined octree (or
// quadtree for planar domains) whose leaves record the target element
// size, with graded constraint propagation, range-minimum queries and
// inner/outer classification of cells against an advancing front.
package sizefield

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/ymir/featureflag"
	"github.com/aukilabs/ymir/geom"
	"github.com/google/uuid"
)

const (
	// NoConstraint is returned by GetMinH when no cell intersects the
	// queried box. Callers treat values >= NoConstraint as "no
	// constraint found".
	NoConstraint = 1e8

	// rootEnlargement skews the root box so that domain points do not
	// land exactly on partition planes.
	rootEnlargement = 0.0879
)

// Field is the size field over a bounding box. All mutators are
// single-threaded; queries are pure and may not interleave with
// mutators across goroutines.
type Field struct {
	id      string
	dim     int
	grading float64

	// boundingBox is the caller-supplied domain box, before the root
	// enlargement.
	boundingBox geom.Box

	// rootX1, rootX2 are the enlarged, squared root corners; kept so
	// Clear can rebuild the root.
	rootX1, rootX2 [3]float64

	root  *Cell
	boxes []*Cell
	pool  *cellPool

	flags featureflag.FeatureFlag
}

// Option configures a Field at construction.
type Option func(*Field)

// WithFeatureFlags sets the feature flags consulted by diagnostic code
// paths.
func WithFeatureFlags(flags featureflag.FeatureFlag) Option {
	return func(f *Field) {
		f.flags = flags
	}
}

// New creates a size field over the box [pmin, pmax]. grading bounds
// how fast the size may change spatially (conventionally in (0.1, 0.9),
// not validated); dim is 2 or 3. The root box is enlarged asymmetrically
// per axis and squared to the largest side before the root cell is
// created.
func New(pmin, pmax geom.Vector3, grading float64, dim int, opts ...Option) (*Field, error) {
	if dim != 2 && dim != 3 {
		return nil, errors.New("unsupported dimension").WithTag("dimension", dim)
	}

	f := &Field{
		id:          uuid.NewString(),
		dim:         dim,
		grading:     grading,
		boundingBox: geom.Box{Min: pmin, Max: pmax},
		pool:        newCellPool(),
		flags:       featureflag.New(nil),
	}

	var x1, x2 [3]float64
	for i := 0; i < dim; i++ {
		val := rootEnlargement * float64(i+1)
		x1[i] = (1+val)*pmin.Axis(i) - val*pmax.Axis(i)
		x2[i] = 1.1*pmax.Axis(i) - 0.1*pmin.Axis(i)
	}

	hmax := x2[0] - x1[0]
	for i := 1; i < dim; i++ {
		if x2[i]-x1[i] > hmax {
			hmax = x2[i] - x1[i]
		}
	}
	for i := 0; i < dim; i++ {
		x2[i] = x1[i] + hmax
	}

	f.rootX1, f.rootX2 = x1, x2
	f.root = f.newCell(x1, x2)

	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// ID returns the field identity used in metrics and log tags.
func (f *Field) ID() string {
	return f.id
}

// Dimension returns 2 or 3.
func (f *Field) Dimension() int {
	return f.dim
}

// Grading returns the grading coefficient.
func (f *Field) Grading() float64 {
	return f.grading
}

// BoundingBox returns the caller-supplied domain box.
func (f *Field) BoundingBox() geom.Box {
	return f.boundingBox
}

// Root returns the root cell.
func (f *Field) Root() *Cell {
	return f.root
}

// newCell allocates a cell from the pool, initializes it from the box
// corners and registers it in the flat cell list.
func (f *Field) newCell(x1, x2 [3]float64) *Cell {
	c := f.pool.alloc()
	c.init(x1, x2)
	f.boxes = append(f.boxes, c)
	cellsAllocated.With(fieldLabels(f.id)).Inc()
	return c
}

// SetH imposes the size constraint h at p: afterwards GetH(p) <= h, and
// the constraint spreads outwards relaxed by grading per cell edge.
// Points outside the root cube and constraints within 20% of the
// current value are silently ignored.
func (f *Field) SetH(p geom.Vector3, h float64) {
	for i := 0; i < f.dim; i++ {
		if math.Abs(p.Axis(i)-f.root.Center.Axis(i)) > f.root.Half {
			return
		}
	}

	if f.GetH(p) <= 1.2*h {
		return
	}

	// descend to the finest cell enclosing p
	box := f.root
	for next := box.children[box.childIndex(p, f.dim)]; next != nil; next = box.children[box.childIndex(p, f.dim)] {
		box = next
	}

	// refine along p until the cell edge is no coarser than h
	for 2*box.Half > h {
		childnr := box.childIndex(p, f.dim)

		var x1, x2 [3]float64
		h2 := box.Half
		for i := 0; i < f.dim; i++ {
			if childnr&(1<<i) != 0 {
				x1[i] = box.Center.Axis(i)
				x2[i] = x1[i] + h2
			} else {
				x2[i] = box.Center.Axis(i)
				x1[i] = x2[i] - h2
			}
		}

		child := f.newCell(x1, x2)
		box.children[childnr] = child
		child.parent = box
		box = child
	}

	box.HOpt = h
	constraintsImposed.With(fieldLabels(f.id)).Inc()

	// graded propagation, relaxed by grading per final cell edge
	hbox := 2 * box.Half
	hnp := h + f.grading*hbox

	for i := 0; i < f.dim; i++ {
		np := p
		np.SetAxis(i, p.Axis(i)+hbox)
		f.SetH(np, hnp)

		np.SetAxis(i, p.Axis(i)-hbox)
		f.SetH(np, hnp)
	}
}

// GetH returns the target size at p: the HOpt of the first cell on p's
// descent path whose chosen child is absent. Defined for any point; for
// points outside the root the descent is clamped along the nearest
// branch and the returned value is not meaningful.
func (f *Field) GetH(p geom.Vector3) float64 {
	box := f.root
	for {
		child := box.children[box.childIndex(p, f.dim)]
		if child == nil {
			return box.HOpt
		}
		box = child
	}
}

// GetMinH returns the minimal cell edge over cells intersecting the box
// [pmin, pmax]. Inverted axis pairs are swapped first. NoConstraint is
// returned when the box is disjoint from the tree.
func (f *Field) GetMinH(pmin, pmax geom.Vector3) float64 {
	var lo, hi geom.Vector3
	for i := 0; i < 3; i++ {
		if pmin.Axis(i) < pmax.Axis(i) {
			lo.SetAxis(i, pmin.Axis(i))
			hi.SetAxis(i, pmax.Axis(i))
		} else {
			lo.SetAxis(i, pmax.Axis(i))
			hi.SetAxis(i, pmin.Axis(i))
		}
	}

	return f.getMinHRec(lo, hi, f.root)
}

func (f *Field) getMinHRec(pmin, pmax geom.Vector3, box *Cell) float64 {
	h2 := box.Half
	for i := 0; i < f.dim; i++ {
		if pmax.Axis(i) < box.Center.Axis(i)-h2 || pmin.Axis(i) > box.Center.Axis(i)+h2 {
			return NoConstraint
		}
	}

	hmin := 2 * box.Half
	for i := 0; i < 8; i++ {
		if box.children[i] != nil {
			if h := f.getMinHRec(pmin, pmax, box.children[i]); h < hmin {
				hmin = h
			}
		}
	}
	return hmin
}

// Widen pads every refined region with a one-cell buffer of comparable
// size: for each cell, the 27-point neighborhood of its center at its
// own HOpt distance receives a slightly relaxed constraint. Cells
// created while widening are widened too.
func (f *Field) Widen() {
	for i := 0; i < len(f.boxes); i++ {
		h := f.boxes[i].HOpt
		c := f.boxes[i].Midpoint()

		for i1 := -1; i1 <= 1; i1++ {
			for i2 := -1; i2 <= 1; i2++ {
				for i3 := -1; i3 <= 1; i3++ {
					f.SetH(geom.Vector3{
						X: c.X + float64(i1)*h,
						Y: c.Y + float64(i2)*h,
						Z: c.Z + float64(i3)*h,
					}, 1.001*h)
				}
			}
		}
	}
}

// Convexify runs the concavity pass over the tree: each cell probes the
// size at 0.6 of its edge on either side along every axis and imposes
// the largest of its own target and the probed values at its center
// when that value is below 0.95 of its target. The largest value starts
// from the cell's own target, so the condition never holds and the pass
// leaves the field unchanged.
func (f *Field) Convexify() {
	f.convexifyRec(f.root)
}

func (f *Field) convexifyRec(box *Cell) {
	center := box.Midpoint()

	size := 2 * box.Half
	dx := 0.6 * size

	maxh := box.HOpt

	for i := 0; i < 3; i++ {
		hp := center
		hp.SetAxis(i, center.Axis(i)+dx)
		maxh = math.Max(maxh, f.GetH(hp))
		hp.SetAxis(i, center.Axis(i)-dx)
		maxh = math.Max(maxh, f.GetH(hp))
	}

	if maxh < 0.95*box.HOpt {
		f.SetH(center, maxh)
	}

	for i := 0; i < 8; i++ {
		if box.children[i] != nil {
			f.convexifyRec(box.children[i])
		}
	}
}

// Clear drops every cell below the root and resets the root to its
// initial unconstrained state.
func (f *Field) Clear() {
	f.pool.reset()
	f.boxes = f.boxes[:0]
	f.root = f.newCell(f.rootX1, f.rootX2)
}
