package adfront

import (
	"math"
	"testing"

	"github.com/aukilabs/ymir/geom"
	"github.com/stretchr/testify/require"
)

// unit cube surface as a triangle soup
func cubeFront() *Front3 {
	f := NewFront3()

	corner := func(i, j, k int) geom.Vector3 {
		return geom.Vector3{X: float64(i), Y: float64(j), Z: float64(k)}
	}
	quad := func(a, b, c, d geom.Vector3) {
		f.AddTriangle(a, b, c)
		f.AddTriangle(a, c, d)
	}

	quad(corner(0, 0, 0), corner(1, 0, 0), corner(1, 1, 0), corner(0, 1, 0))
	quad(corner(0, 0, 1), corner(1, 0, 1), corner(1, 1, 1), corner(0, 1, 1))
	quad(corner(0, 0, 0), corner(1, 0, 0), corner(1, 0, 1), corner(0, 0, 1))
	quad(corner(0, 1, 0), corner(1, 1, 0), corner(1, 1, 1), corner(0, 1, 1))
	quad(corner(0, 0, 0), corner(0, 1, 0), corner(0, 1, 1), corner(0, 0, 1))
	quad(corner(1, 0, 0), corner(1, 1, 0), corner(1, 1, 1), corner(1, 0, 1))

	return f
}

func TestFront3Faces(t *testing.T) {
	f := cubeFront()

	require.Equal(t, 12, f.FaceCount())

	box := f.FaceBox(0)
	require.True(t, box.Min.Equal(geom.Vector3{X: 0, Y: 0, Z: 0}))
	require.True(t, box.Max.Equal(geom.Vector3{X: 1, Y: 1, Z: 0}))

	bb := f.BoundingBox()
	require.True(t, bb.Min.Equal(geom.Vector3{X: 0, Y: 0, Z: 0}))
	require.True(t, bb.Max.Equal(geom.Vector3{X: 1, Y: 1, Z: 1}))
}

func TestFront3SameSide(t *testing.T) {
	f := cubeFront()

	inside := geom.Vector3{X: 0.4, Y: 0.55, Z: 0.6}
	inside2 := geom.Vector3{X: 0.7, Y: 0.3, Z: 0.45}
	outside := geom.Vector3{X: 1.7, Y: 1.3, Z: 1.45}
	outside2 := geom.Vector3{X: -0.7, Y: 1.3, Z: 0.45}

	t.Run("across the front", func(t *testing.T) {
		require.False(t, f.SameSide(inside, outside, nil))
		require.False(t, f.SameSide(outside2, inside2, nil))
	})

	t.Run("both inside", func(t *testing.T) {
		require.True(t, f.SameSide(inside, inside2, nil))
	})

	t.Run("both outside", func(t *testing.T) {
		// runs past the cube
		require.True(t, f.SameSide(outside, outside2, nil))

		// pierces the cube twice
		require.True(t, f.SameSide(geom.Vector3{X: 1.7, Y: 0.3, Z: 0.45}, geom.Vector3{X: -0.7, Y: 0.3, Z: 0.45}, nil))
	})

	t.Run("restricted subset", func(t *testing.T) {
		// without any face nothing can separate the points
		require.True(t, f.SameSide(inside, outside, []int{}))

		// the bottom faces are not crossed either
		require.True(t, f.SameSide(inside, outside, []int{0, 1}))
	})
}

func squareFront() *Front2 {
	f := NewFront2()
	f.AddSegment(geom.Vector3{X: 0, Y: 0, Z: 0}, geom.Vector3{X: 1, Y: 0, Z: 0})
	f.AddSegment(geom.Vector3{X: 1, Y: 0, Z: 0}, geom.Vector3{X: 1, Y: 1, Z: 0})
	f.AddSegment(geom.Vector3{X: 1, Y: 1, Z: 0}, geom.Vector3{X: 0, Y: 1, Z: 0})
	f.AddSegment(geom.Vector3{X: 0, Y: 1, Z: 0}, geom.Vector3{X: 0, Y: 0, Z: 0})
	return f
}

func TestFront2Lines(t *testing.T) {
	f := squareFront()

	require.Equal(t, 4, f.LineCount())

	a, b := f.Line(1)
	require.True(t, a.Equal(geom.Vector3{X: 1, Y: 0, Z: 0}))
	require.True(t, b.Equal(geom.Vector3{X: 1, Y: 1, Z: 0}))
}

func TestFront2SameSide(t *testing.T) {
	f := squareFront()

	inside := geom.Vector3{X: 0.4, Y: 0.55, Z: 0}
	inside2 := geom.Vector3{X: 0.7, Y: 0.3, Z: 0}
	outside := geom.Vector3{X: 1.7, Y: 1.3, Z: 0}
	outside2 := geom.Vector3{X: -0.7, Y: 0.45, Z: 0}

	t.Run("across the front", func(t *testing.T) {
		require.False(t, f.SameSide(inside, outside, nil))
		require.False(t, f.SameSide(outside2, inside2, nil))
	})

	t.Run("both inside", func(t *testing.T) {
		require.True(t, f.SameSide(inside, inside2, nil))
	})

	t.Run("both outside", func(t *testing.T) {
		require.True(t, f.SameSide(outside, outside2, nil))
	})

	t.Run("restricted subset", func(t *testing.T) {
		require.True(t, f.SameSide(inside, outside, []int{}))
		require.True(t, f.SameSide(inside, outside, []int{0}))
	})
}

func TestFront2PinsZ(t *testing.T) {
	f := NewFront2()
	f.AddSegment(geom.Vector3{X: 0, Y: 0, Z: 3}, geom.Vector3{X: 1, Y: 0, Z: -2})

	a, b := f.Line(0)
	require.Equal(t, 0.0, a.Z)
	require.Equal(t, 0.0, b.Z)
}

func TestCircleParity(t *testing.T) {
	f := NewFront2()
	center := geom.Vector3{X: 0, Y: 0, Z: 0}
	n := 32
	at := func(i int) geom.Vector3 {
		angle := 2 * math.Pi * float64(i%n) / float64(n)
		return geom.Vector3{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	for i := 0; i < n; i++ {
		f.AddSegment(at(i), at(i+1))
	}

	require.False(t, f.SameSide(center, geom.Vector3{X: 2.1, Y: 0.3, Z: 0}, nil))
	require.True(t, f.SameSide(geom.Vector3{X: 0.1, Y: 0.2, Z: 0}, center, nil))
	require.True(t, f.SameSide(geom.Vector3{X: 2.1, Y: 0.3, Z: 0}, geom.Vector3{X: 0.3, Y: 2.1, Z: 0}, nil))
}
