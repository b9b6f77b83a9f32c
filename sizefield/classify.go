package sizefield

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/ymir/featureflag"
	"github.com/aukilabs/ymir/geom"
)

// CutBoundary marks every cell whose box intersects [pmin, pmax] as
// boundary-cutting. Drivers call it once per boundary feature box
// before classifying inner cells.
func (f *Field) CutBoundary(pmin, pmax geom.Vector3) {
	f.cutBoundaryRec(pmin, pmax, f.root)
}

func (f *Field) cutBoundaryRec(pmin, pmax geom.Vector3, box *Cell) {
	h2 := box.Half
	for i := 0; i < f.dim; i++ {
		if pmax.Axis(i) < box.Center.Axis(i)-h2 || pmin.Axis(i) > box.Center.Axis(i)+h2 {
			return
		}
	}

	box.cutBoundary = true
	for i := 0; i < 8; i++ {
		if box.children[i] != nil {
			f.cutBoundaryRec(pmin, pmax, box.children[i])
		}
	}
}

// FindInnerBoxes classifies every cell of a 3D field against the
// advancing front: cells entirely inside the domain get the inner flag,
// cells whose center is inside get the point-inner flag. Boundary
// cutting must have been marked beforehand via CutBoundary.
//
// testInner, when non-nil, is a reference predicate used for debug
// comparison only.
func (f *Field) FindInnerBoxes(front Front3, testInner func(geom.Vector3) bool) error {
	if front == nil {
		return errors.New("advancing front is not set").WithTag(fieldIDLabel, f.id)
	}
	if f.dim != 3 {
		return errors.New("field is not volumetric").
			WithTag(fieldIDLabel, f.id).
			WithTag(dimensionLabel, f.dim)
	}

	start := time.Now()
	defer func() {
		classifyDuration.
			With(dimensionLabels(3)).
			Observe(time.Since(start).Seconds())
	}()

	nf := front.FaceCount()

	for _, b := range f.boxes {
		b.isInner = false
	}
	f.root.isInner = false

	rpmid := f.root.Midpoint()
	rx2 := geom.Add(rpmid, geom.Vector3{X: f.root.Half, Y: f.root.Half, Z: f.root.Half})

	f.root.pInner = !front.SameSide(rpmid, rx2, nil)

	if testInner != nil {
		logs.WithTag(fieldIDLabel, f.id).
			WithTag("inner", f.root.pInner).
			WithTag("test_inner", testInner(rpmid)).
			Debug("root inner seed")
	}

	faceinds := make([]int, nf)
	faceboxes := make([]geom.Box, nf)
	for i := 0; i < nf; i++ {
		faceinds[i] = i
		faceboxes[i] = front.FaceBox(i)
	}

	for i := 0; i < 8; i++ {
		f.findInnerBoxesRec(f.root.children[i], front.SameSide, faceboxes, faceinds, nf)
	}

	f.auditClassification(testInner)
	return nil
}

// FindInnerBoxes2 is the planar variant of FindInnerBoxes. Face boxes
// are synthesized from the front's segment endpoints.
func (f *Field) FindInnerBoxes2(front Front2, testInner func(geom.Vector3) bool) error {
	if front == nil {
		return errors.New("advancing front is not set").WithTag(fieldIDLabel, f.id)
	}
	if f.dim != 2 {
		return errors.New("field is not planar").
			WithTag(fieldIDLabel, f.id).
			WithTag(dimensionLabel, f.dim)
	}

	start := time.Now()
	defer func() {
		classifyDuration.
			With(dimensionLabels(2)).
			Observe(time.Since(start).Seconds())
	}()

	for _, b := range f.boxes {
		b.isInner = false
	}
	f.root.isInner = false

	rpmid := f.root.Midpoint()
	rx2 := geom.Add(rpmid, geom.Vector3{X: f.root.Half, Y: f.root.Half})

	f.root.pInner = !front.SameSide(rpmid, rx2, nil)

	if testInner != nil {
		logs.WithTag(fieldIDLabel, f.id).
			WithTag("inner", f.root.pInner).
			WithTag("test_inner", testInner(rpmid)).
			Debug("root inner seed")
	}

	nf := front.LineCount()
	faceinds := make([]int, nf)
	faceboxes := make([]geom.Box, nf)
	for i := 0; i < nf; i++ {
		faceinds[i] = i
		a, b := front.Line(i)
		faceboxes[i] = geom.NewBox(a, b)
	}

	for i := 0; i < 8; i++ {
		f.findInnerBoxesRec(f.root.children[i], front.SameSide, faceboxes, faceinds, nf)
	}

	f.auditClassification(testInner)
	return nil
}

// findInnerBoxesRec is the depth-first sweep shared by both dimensions.
// faceinds is rewritten in place at each level so that the recursion
// into the children sees only the faces intersecting the current cell,
// as a prefix of the shared array.
func (f *Field) findInnerBoxesRec(box *Cell, sameSide func(p1, p2 geom.Vector3, faceSubset []int) bool, faceboxes []geom.Box, faceinds []int, nfinbox int) {
	if box == nil {
		return
	}

	father := box.parent

	c := box.Midpoint()
	boxc := geom.NewBoxAround(c, box.Half)
	boxcfc := geom.NewBox(c, father.Midpoint())

	// non-nil even when empty: a nil subset would mean "every face" to
	// the oracle
	faceused := make([]int, 0, nfinbox)
	faceused2 := make([]int, 0, nfinbox)
	facenotused := make([]int, 0, nfinbox)

	for j := 0; j < nfinbox; j++ {
		facebox := faceboxes[faceinds[j]]

		if boxc.Intersects(facebox) {
			faceused = append(faceused, faceinds[j])
		} else {
			facenotused = append(facenotused, faceinds[j])
		}

		if boxcfc.Intersects(facebox) {
			faceused2 = append(faceused2, faceinds[j])
		}
	}

	copy(faceinds, faceused)
	copy(faceinds[len(faceused):], facenotused)

	if !father.cutBoundary {
		box.isInner = father.isInner
		box.pInner = father.pInner
	} else {
		if father.isInner {
			box.pInner = true
		} else {
			// only faces that may lie between the two centers can flip
			// the side
			if sameSide(c, father.Midpoint(), faceused2) {
				box.pInner = father.pInner
			} else {
				box.pInner = !father.pInner
			}
		}

		if box.cutBoundary {
			box.isInner = false
		} else {
			box.isInner = box.pInner
		}
	}

	nf := len(faceused)
	for i := 0; i < 8; i++ {
		f.findInnerBoxesRec(box.children[i], sameSide, faceboxes, faceinds, nf)
	}
}

// FindInnerBoxesFunc classifies inner cells with a point predicate
// instead of an advancing front: the tree is descended through
// boundary-cutting cells, and the first non-cutting cell whose midpoint
// satisfies inner is marked inner while the flags of its descendants,
// which it subsumes, are cleared.
func (f *Field) FindInnerBoxesFunc(inner func(geom.Vector3) bool) error {
	if inner == nil {
		return errors.New("inner predicate is not set").WithTag(fieldIDLabel, f.id)
	}

	f.findInnerBoxesFuncRec(inner, f.root)
	return nil
}

func (f *Field) findInnerBoxesFuncRec(inner func(geom.Vector3) bool, box *Cell) {
	if box.cutBoundary {
		for i := 0; i < 8; i++ {
			if box.children[i] != nil {
				f.findInnerBoxesFuncRec(inner, box.children[i])
			}
		}
	} else {
		if inner(box.Midpoint()) {
			f.setInnerRec(box)
		}
	}
}

// setInnerRec marks box inner and clears the flags of its descendants,
// which are subsumed by it.
func (f *Field) setInnerRec(box *Cell) {
	box.isInner = true
	for i := 0; i < 8; i++ {
		if box.children[i] != nil {
			f.clearFlagsRec(box.children[i])
		}
	}
}

func (f *Field) clearFlagsRec(box *Cell) {
	box.cutBoundary = false
	box.isInner = false
	for i := 0; i < 8; i++ {
		if box.children[i] != nil {
			f.clearFlagsRec(box.children[i])
		}
	}
}

// auditClassification compares the point-inner flag of every cell with
// the reference predicate and logs the disagreement count. Active only
// with the classify-audit feature flag and a non-nil predicate.
func (f *Field) auditClassification(testInner func(geom.Vector3) bool) {
	if testInner == nil || !f.flags.IsSet(featureflag.FlagClassifyAudit) {
		return
	}

	var mismatches int
	for _, b := range f.boxes {
		if b.pInner != testInner(b.Midpoint()) {
			mismatches++
		}
	}

	logs.WithTag(fieldIDLabel, f.id).
		WithTag("cells", len(f.boxes)).
		WithTag("mismatches", mismatches).
		Debug("classification audit")
}

// GetInnerPoints appends the midpoint of every inner cell to dst and
// returns it. Planar fields only contribute refined inner cells, the
// ones that have children.
func (f *Field) GetInnerPoints(dst []geom.Vector3) []geom.Vector3 {
	if f.dim == 2 {
		for _, b := range f.boxes {
			if b.isInner && b.HasChildren() {
				dst = append(dst, b.Midpoint())
			}
		}
		return dst
	}

	for _, b := range f.boxes {
		if b.isInner {
			dst = append(dst, b.Midpoint())
		}
	}
	return dst
}

// GetOuterPoints appends the midpoint of every cell that is neither
// inner nor boundary-cutting to dst and returns it.
func (f *Field) GetOuterPoints(dst []geom.Vector3) []geom.Vector3 {
	for _, b := range f.boxes {
		if !b.isInner && !b.cutBoundary {
			dst = append(dst, b.Midpoint())
		}
	}
	return dst
}
