package sizefield

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/aukilabs/ymir/geom"
	"github.com/segmentio/encoding/json"
)

// DebugInfo is a snapshot of the field state for diagnostics.
type DebugInfo struct {
	FieldID      string       `json:"field_id"`
	Dimension    int          `json:"dimension"`
	Grading      float64      `json:"grading"`
	CellCount    int          `json:"cell_count"`
	LeafCount    int          `json:"leaf_count"`
	InnerCount   int          `json:"inner_count"`
	OuterCount   int          `json:"outer_count"`
	CutCount     int          `json:"cut_count"`
	MaxDepth     int          `json:"max_depth"`
	BoundingBox  geom.Box     `json:"bounding_box"`
	RootCenter   geom.Vector3 `json:"root_center"`
	RootHalf     float64      `json:"root_half"`
	FeatureFlags []string     `json:"feature_flags,omitempty"`
}

// GetDebugInfo collects counts over the flat cell list.
func (f *Field) GetDebugInfo() DebugInfo {
	info := DebugInfo{
		FieldID:      f.id,
		Dimension:    f.dim,
		Grading:      f.grading,
		CellCount:    len(f.boxes),
		BoundingBox:  f.boundingBox,
		RootCenter:   f.root.Center,
		RootHalf:     f.root.Half,
		FeatureFlags: f.flags.List(),
	}

	for _, b := range f.boxes {
		if !b.HasChildren() {
			info.LeafCount++
		}
		if b.isInner {
			info.InnerCount++
		}
		if b.cutBoundary {
			info.CutCount++
		}
		if !b.isInner && !b.cutBoundary {
			info.OuterCount++
		}
	}

	info.MaxDepth = maxDepth(f.root)
	return info
}

func maxDepth(box *Cell) int {
	depth := 0
	for i := 0; i < 8; i++ {
		if box.children[i] != nil {
			if d := maxDepth(box.children[i]); d > depth {
				depth = d
			}
		}
	}
	return depth + 1
}

// JSON encodes the debug info.
func (d DebugInfo) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// MemInfo writes a memory report for the cell storage.
func (f *Field) MemInfo(w io.Writer) {
	n := len(f.boxes)
	size := int(unsafe.Sizeof(Cell{}))
	fmt.Fprintf(w, "sizefield: %d boxes of %d bytes = %d bytes\n", n, size, n*size)
}
