package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEqualWithEpsilon(t *testing.T) {
	require.True(t, EqualWithEpsilon(0.1, 0.2, 0.11))
	require.False(t, EqualWithEpsilon(0.1, 0.3, 0.11))
}

func TestVectorClass(t *testing.T) {
	zeroVector := Vector3{0, 0, 0}
	oneVector := Vector3{1, 1, 1}

	require.True(t, zeroVector.Equal(Vector3{0, 0, 0}))
	require.True(t, oneVector.EqualWithEpsilon(Vector3{0.9, 1.1, 1}, 0.11))

	require.True(t, oneVector.Equal(Add(zeroVector, oneVector)))
	require.True(t, oneVector.Equal(Sub(oneVector, zeroVector)))
	require.True(t, zeroVector.Equal(Mul(oneVector, 0)))

	l1Vector := Vector3{1, 0, 0}
	require.True(t, 1 == l1Vector.Length())
}

func TestDot(t *testing.T) {
	xAxis := Vector3{1, 0, 0}
	yAxis := Vector3{0, 1, 0}

	require.Equal(t, float64(0), xAxis.Dot(yAxis))
}

func TestCross(t *testing.T) {
	xAxis := Vector3{1, 0, 0}
	yAxis := Vector3{0, 1, 0}
	zAxis := Vector3{0, 0, 1}

	require.True(t, zAxis.Equal(Cross(xAxis, yAxis)))
}

func TestAxisAccess(t *testing.T) {
	v := Vector3{1, 2, 3}
	require.Equal(t, 1.0, v.Axis(0))
	require.Equal(t, 2.0, v.Axis(1))
	require.Equal(t, 3.0, v.Axis(2))

	v.SetAxis(1, 5)
	require.True(t, v.Equal(Vector3{1, 5, 3}))
}

func TestChebyshevDistance(t *testing.T) {
	a := Vector3{0, 0, 0}
	b := Vector3{0.1, -0.5, 0.2}

	require.Equal(t, 0.5, ChebyshevDistance(a, b))
}

func TestNewBoxSortsCorners(t *testing.T) {
	box := NewBox(Vector3{1, -1, 2}, Vector3{-1, 1, 0})

	require.True(t, box.Min.Equal(Vector3{-1, -1, 0}))
	require.True(t, box.Max.Equal(Vector3{1, 1, 2}))
}

func TestBoxIntersects(t *testing.T) {
	box := NewBoxAround(Vector3{0, 0, 0}, 1)

	t.Run("overlapping", func(t *testing.T) {
		require.True(t, box.Intersects(NewBoxAround(Vector3{0.5, 0.5, 0.5}, 1)))
	})

	t.Run("touching", func(t *testing.T) {
		require.True(t, box.Intersects(NewBoxAround(Vector3{2, 0, 0}, 1)))
	})

	t.Run("disjoint", func(t *testing.T) {
		require.False(t, box.Intersects(NewBoxAround(Vector3{3, 0, 0}, 1)))
	})
}

func TestBoxExtend(t *testing.T) {
	box := NewBox(Vector3{0, 0, 0}, Vector3{1, 1, 0})
	box.Extend(Vector3{-1, 2, 0})

	require.True(t, box.Min.Equal(Vector3{-1, 0, 0}))
	require.True(t, box.Max.Equal(Vector3{1, 2, 0}))
}

func TestBoxContains(t *testing.T) {
	box := NewBoxAround(Vector3{0, 0, 0}, 1)

	require.True(t, box.Contains(Vector3{0.5, -0.5, 0}))
	require.True(t, box.Contains(Vector3{1, 1, 1}))
	require.False(t, box.Contains(Vector3{1.5, 0, 0}))

	require.True(t, box.ContainsBox(NewBoxAround(Vector3{0, 0, 0}, 0.5)))
	require.False(t, box.ContainsBox(NewBoxAround(Vector3{0.8, 0, 0}, 0.5)))

	require.True(t, box.Center().Equal(Vector3{0, 0, 0}))
}
