// Package adfront provides concrete advancing-front oracles for the
// size field classifier: a triangle-soup front for volumetric domains
// and a segment front for planar ones. Side queries are answered by
// counting crossings of the probe segment against the front.
package adfront

import (
	"github.com/aukilabs/ymir/geom"
)

// Front3 is a closed triangle-soup front. Faces index into a shared
// point list; each face caches its bounding box.
type Front3 struct {
	points []geom.Vector3
	faces  [][3]int
	boxes  []geom.Box
}

func NewFront3() *Front3 {
	return &Front3{}
}

// AddPoint appends a front point and returns its index.
func (f *Front3) AddPoint(p geom.Vector3) int {
	f.points = append(f.points, p)
	return len(f.points) - 1
}

// AddFace appends a triangular face over previously added points.
func (f *Front3) AddFace(i1, i2, i3 int) {
	f.faces = append(f.faces, [3]int{i1, i2, i3})

	box := geom.NewBox(f.points[i1], f.points[i2])
	box.Extend(f.points[i3])
	f.boxes = append(f.boxes, box)
}

// AddTriangle appends a face given by its corner points.
func (f *Front3) AddTriangle(a, b, c geom.Vector3) {
	f.AddFace(f.AddPoint(a), f.AddPoint(b), f.AddPoint(c))
}

func (f *Front3) FaceCount() int {
	return len(f.faces)
}

func (f *Front3) FaceBox(i int) geom.Box {
	return f.boxes[i]
}

// SameSide reports whether the segment p1-p2 crosses the front an even
// number of times. A nil faceSubset means every face.
func (f *Front3) SameSide(p1, p2 geom.Vector3, faceSubset []int) bool {
	crossings := 0

	if faceSubset != nil {
		for _, i := range faceSubset {
			if f.segmentCrossesFace(p1, p2, i) {
				crossings++
			}
		}
	} else {
		for i := range f.faces {
			if f.segmentCrossesFace(p1, p2, i) {
				crossings++
			}
		}
	}

	return crossings%2 == 0
}

func (f *Front3) segmentCrossesFace(p1, p2 geom.Vector3, i int) bool {
	face := f.faces[i]
	a := f.points[face[0]]
	b := f.points[face[1]]
	c := f.points[face[2]]

	dir := geom.Sub(p2, p1)
	normal := geom.Cross(geom.Sub(b, a), geom.Sub(c, a))

	denominator := normal.Dot(dir)
	if denominator == 0 {
		// segment parallel to the face plane
		return false
	}

	t := (normal.Dot(a) - normal.Dot(p1)) / denominator
	if t <= 0 || t >= 1 {
		return false
	}

	hit := geom.Add(p1, geom.Mul(dir, t))

	// hit must be strictly on the inner side of all three edges
	if geom.Cross(geom.Sub(b, a), geom.Sub(hit, a)).Dot(normal) <= 0 {
		return false
	}
	if geom.Cross(geom.Sub(c, b), geom.Sub(hit, b)).Dot(normal) <= 0 {
		return false
	}
	if geom.Cross(geom.Sub(a, c), geom.Sub(hit, c)).Dot(normal) <= 0 {
		return false
	}
	return true
}

// BoundingBox returns the box enclosing the whole front. The zero box
// is returned for an empty front.
func (f *Front3) BoundingBox() geom.Box {
	if len(f.points) == 0 {
		return geom.Box{}
	}

	box := geom.NewBox(f.points[0], f.points[0])
	for _, p := range f.points[1:] {
		box.Extend(p)
	}
	return box
}
