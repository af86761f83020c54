// Package video acquires frame sequences from video containers.
package video

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// Reader reads frames from a video file.
type Reader struct {
	cap  *gocv.VideoCapture
	path string
}

// Open opens a video file for reading.
func Open(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("video file: %w", err)
	}

	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("open video %s: file exists but cannot be decoded", path)
	}

	return &Reader{cap: cap, path: path}, nil
}

// Path returns the video file path.
func (r *Reader) Path() string { return r.path }

// FrameCount returns the total number of frames in the video.
func (r *Reader) FrameCount() int {
	return int(r.cap.Get(gocv.VideoCaptureFrameCount))
}

// FPS returns the video's frame rate.
func (r *Reader) FPS() float64 {
	return r.cap.Get(gocv.VideoCaptureFPS)
}

// Size returns the video's frame width and height.
func (r *Reader) Size() (width, height int) {
	return int(r.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(r.cap.Get(gocv.VideoCaptureFrameHeight))
}

// ReadSegment reads count consecutive frames starting at frame index
// start. It returns the frames it could read; fewer than count when the
// video ends early. The caller owns the frames, see CloseFrames.
func (r *Reader) ReadSegment(start, count int) ([]gocv.Mat, error) {
	if start < 0 || count <= 0 {
		return nil, fmt.Errorf("invalid segment [%d, %d)", start, start+count)
	}

	r.cap.Set(gocv.VideoCapturePosFrames, float64(start))

	frames := make([]gocv.Mat, 0, count)
	for i := 0; i < count; i++ {
		frame := gocv.NewMat()
		if ok := r.cap.Read(&frame); !ok || frame.Empty() {
			frame.Close()
			break
		}
		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames readable at index %d of %s", start, r.path)
	}
	return frames, nil
}

// Close releases the underlying capture.
func (r *Reader) Close() error {
	return r.cap.Close()
}

// CloseFrames closes every Mat in frames.
func CloseFrames(frames []gocv.Mat) {
	for i := range frames {
		frames[i].Close()
	}
}
