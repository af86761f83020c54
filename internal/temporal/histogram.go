package temporal

import (
	"gocv.io/x/gocv"

	"smoke-annotator/pkg/geometry"
)

// histEpsilon keeps the histogram normalization finite for empty regions:
// zero pixels divide by epsilon alone and yield an all-zero vector, not a
// uniform one. The classifier depends on that asymmetry.
const histEpsilon = 1e-6

// SaturationHistogram computes the normalized saturation histogram for one
// region of a standardized BGR frame. Saturation is scaled to [0,1] and
// counted into numBins equal-width buckets over [0,1], with the top edge
// falling into the last bucket. Counts are divided by (total + epsilon),
// so a non-empty region sums to ~1 and an empty region is all zeros.
func SaturationHistogram(frame gocv.Mat, bounds geometry.RectInt, numBins int) []float64 {
	hist := make([]float64, numBins)
	if bounds.Empty() {
		return hist
	}

	roi := frame.Region(bounds.ToImageRect())
	defer roi.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(roi, &hsv, gocv.ColorBGRToHSV)

	counts := make([]int, numBins)
	rows, cols := hsv.Rows(), hsv.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			s := float64(hsv.GetUCharAt(y, x*3+1)) / 255.0
			bin := int(s * float64(numBins))
			if bin >= numBins {
				bin = numBins - 1
			}
			counts[bin]++
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}

	denom := float64(total) + histEpsilon
	for i, c := range counts {
		hist[i] = float64(c) / denom
	}
	return hist
}
