package sizefield

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/aukilabs/ymir/geom"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
)

func TestGetDebugInfo(t *testing.T) {
	f := newField(t, 0.3, 2)
	center := geom.Vector3{X: 0.5, Y: 0.5, Z: 0}
	r := 0.25

	f.SetH(center, 0.03)

	front := circleFront2(center, r, 16)
	markFront2(f, front)
	require.NoError(t, f.FindInnerBoxes2(front, nil))

	info := f.GetDebugInfo()

	require.Equal(t, f.ID(), info.FieldID)
	require.Equal(t, 2, info.Dimension)
	require.Equal(t, len(f.boxes), info.CellCount)
	require.Greater(t, info.LeafCount, 0)
	require.Greater(t, info.MaxDepth, 1)

	// inner, cut and outer partition the cells
	require.Equal(t, info.CellCount, info.InnerCount+info.CutCount+info.OuterCount)

	require.InDelta(t, f.Root().Half, info.RootHalf, 1e-12)
}

func TestDebugInfoJSON(t *testing.T) {
	f := newField(t, 0.3, 3)
	f.SetH(geom.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, 0.1)

	raw, err := f.GetDebugInfo().JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, f.ID(), decoded["field_id"])
	require.EqualValues(t, 3, decoded["dimension"])
}

func TestMemInfo(t *testing.T) {
	f := newField(t, 0.3, 3)
	f.SetH(geom.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, 0.1)

	var buf bytes.Buffer
	f.MemInfo(&buf)

	require.Contains(t, buf.String(), fmt.Sprintf("%d boxes of", len(f.boxes)))
}

func TestMaxDepthMatchesRefinement(t *testing.T) {
	f := newField(t, 0.3, 3)
	h := 0.01
	f.SetH(geom.Vector3{X: 0.5, Y: 0.5, Z: 0.5}, h)

	// depth follows the halving refinement of the root edge
	want := int(math.Ceil(math.Log2(2*f.Root().Half/h))) + 1
	require.LessOrEqual(t, f.GetDebugInfo().MaxDepth, want+1)
}
