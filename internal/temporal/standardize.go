package temporal

import (
	"image"

	"gocv.io/x/gocv"
)

// StandardizeFrame resizes a frame to the canonical size. Frames already at
// the canonical size are returned as-is with owned=false; otherwise a new
// Mat is returned with owned=true and the caller must Close it. The input
// Mat is never written either way.
func StandardizeFrame(frame gocv.Mat, width, height int) (std gocv.Mat, owned bool) {
	if frame.Cols() == width && frame.Rows() == height {
		return frame, false
	}

	resized := gocv.NewMat()
	gocv.Resize(frame, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	return resized, true
}
