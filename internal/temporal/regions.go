package temporal

import (
	"fmt"

	"smoke-annotator/pkg/geometry"
)

// Regions cover 40% of each frame dimension with origins at 0%, 30% and
// 60%, giving a 20% overlap between neighbours.
const (
	regionCoverage = 0.4
	regionSpacing  = 0.3
)

// Region is one of the 9 overlapping sub-areas of a frame.
type Region struct {
	Name   string // R1..R9, row-major
	Row    int    // 0..2
	Col    int    // 0..2
	Bounds geometry.RectInt
}

// LayoutRegions computes the 9 region bounds for a frame of the given size.
// The layout is a pure function of the frame size: bounds are clipped to
// the frame, and a zero-area frame yields zero-area regions rather than an
// error. Downstream stages treat those as empty.
func LayoutRegions(frameWidth, frameHeight int) []Region {
	regionW := int(float64(frameWidth) * regionCoverage)
	regionH := int(float64(frameHeight) * regionCoverage)

	xs := [GridCols]int{0, int(float64(frameWidth) * regionSpacing), int(float64(frameWidth) * 0.6)}
	ys := [GridRows]int{0, int(float64(frameHeight) * regionSpacing), int(float64(frameHeight) * 0.6)}

	regions := make([]Region, 0, GridRows*GridCols)
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			bounds := geometry.NewRectInt(xs[col], ys[row], regionW, regionH).
				ClipTo(frameWidth, frameHeight)
			regions = append(regions, Region{
				Name:   fmt.Sprintf("R%d", row*GridCols+col+1),
				Row:    row,
				Col:    col,
				Bounds: bounds,
			})
		}
	}
	return regions
}
