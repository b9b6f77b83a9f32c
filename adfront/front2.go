package adfront

import (
	"github.com/aukilabs/ymir/geom"
)

// Front2 is a planar front made of line segments. Endpoints carry
// Z = 0; segments index into a shared point list.
type Front2 struct {
	points []geom.Vector3
	lines  [][2]int
}

func NewFront2() *Front2 {
	return &Front2{}
}

// AddPoint appends a front point, pinning its Z to 0, and returns its
// index.
func (f *Front2) AddPoint(p geom.Vector3) int {
	p.Z = 0
	f.points = append(f.points, p)
	return len(f.points) - 1
}

// AddLine appends a segment over previously added points.
func (f *Front2) AddLine(i1, i2 int) {
	f.lines = append(f.lines, [2]int{i1, i2})
}

// AddSegment appends a segment given by its endpoints.
func (f *Front2) AddSegment(a, b geom.Vector3) {
	f.AddLine(f.AddPoint(a), f.AddPoint(b))
}

func (f *Front2) LineCount() int {
	return len(f.lines)
}

// Line returns the endpoints of segment i.
func (f *Front2) Line(i int) (geom.Vector3, geom.Vector3) {
	return f.points[f.lines[i][0]], f.points[f.lines[i][1]]
}

// SameSide reports whether the segment p1-p2 crosses the front an even
// number of times. A nil faceSubset means every segment.
func (f *Front2) SameSide(p1, p2 geom.Vector3, faceSubset []int) bool {
	crossings := 0

	if faceSubset != nil {
		for _, i := range faceSubset {
			if f.segmentCrossesLine(p1, p2, i) {
				crossings++
			}
		}
	} else {
		for i := range f.lines {
			if f.segmentCrossesLine(p1, p2, i) {
				crossings++
			}
		}
	}

	return crossings%2 == 0
}

func (f *Front2) segmentCrossesLine(p1, p2 geom.Vector3, i int) bool {
	a := f.points[f.lines[i][0]]
	b := f.points[f.lines[i][1]]

	d1 := orient2(a, b, p1)
	d2 := orient2(a, b, p2)
	d3 := orient2(p1, p2, a)
	d4 := orient2(p1, p2, b)

	return d1*d2 < 0 && d3*d4 < 0
}

// orient2 is the signed area of the triangle a, b, p in the XY plane.
func orient2(a, b, p geom.Vector3) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
