package sizefield

import (
	"github.com/aukilabs/ymir/geom"
)

// Front3 is the advancing-front oracle consumed by 3D classification.
// Faces are consulted through their indices; a nil subset passed to
// SameSide means every face.
type Front3 interface {
	// FaceCount returns the number of front faces.
	FaceCount() int

	// FaceBox returns the bounding box of face i.
	FaceBox(i int) geom.Box

	// SameSide reports whether a path from p1 to p2 can avoid crossing
	// the front, optionally restricted to the given face subset.
	SameSide(p1, p2 geom.Vector3, faceSubset []int) bool
}

// Front2 is the planar advancing-front oracle. Faces are line segments;
// endpoints carry Z = 0.
type Front2 interface {
	// LineCount returns the number of front segments.
	LineCount() int

	// Line returns the endpoints of segment i.
	Line(i int) (geom.Vector3, geom.Vector3)

	// SameSide reports whether a path from p1 to p2 can avoid crossing
	// the front, optionally restricted to the given segment subset.
	SameSide(p1, p2 geom.Vector3, faceSubset []int) bool
}
