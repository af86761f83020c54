package video

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// BatchOptions configures frame batch extraction.
type BatchOptions struct {
	StartFrame  int // first frame index to extract
	FrameSkip   int // frames skipped between batches
	Consecutive int // frames per batch
}

// DefaultBatchOptions returns the default extraction options: single-frame
// batches from the start of the video.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{Consecutive: 1}
}

// ExtractBatches walks a video in batches of opts.Consecutive frames with
// opts.FrameSkip frames skipped between batches. Each batch is written to
// outDir/<video base>/mini_video_NNNN/ as numbered JPEG frames plus an
// mp4 mini-video of the batch. Returns the number of batches written.
func ExtractBatches(videoPath, outDir string, opts BatchOptions) (int, error) {
	if opts.Consecutive <= 0 {
		opts.Consecutive = 1
	}
	if opts.StartFrame < 0 {
		opts.StartFrame = 0
	}

	r, err := Open(videoPath)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	length := r.FrameCount()
	fps := r.FPS()
	width, height := r.Size()
	log.Printf("video: %s: %d frames, %.2f fps, %dx%d", filepath.Base(videoPath), length, fps, width, height)

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	videoDir := filepath.Join(outDir, base)

	// Frame filenames are zero-padded to the total count's width so they
	// sort in frame order.
	digits := len(fmt.Sprint(length))

	batchIndex := 0
	for cur := opts.StartFrame; cur < length; cur += opts.Consecutive + opts.FrameSkip {
		count := opts.Consecutive
		if cur+count > length {
			count = length - cur
		}

		frames, err := r.ReadSegment(cur, count)
		if err != nil {
			log.Printf("video: stopping at frame %d: %v", cur, err)
			break
		}

		batchDir := filepath.Join(videoDir, fmt.Sprintf("mini_video_%04d", batchIndex))
		if err := writeBatch(batchDir, batchIndex, frames, cur, length, digits, fps, width, height); err != nil {
			CloseFrames(frames)
			return batchIndex, err
		}
		CloseFrames(frames)
		batchIndex++
	}

	return batchIndex, nil
}

// writeBatch persists one batch: per-frame JPEGs and the mp4 mini-video.
func writeBatch(batchDir string, batchIndex int, frames []gocv.Mat, startFrame, totalFrames, digits int, fps float64, width, height int) error {
	if err := os.MkdirAll(batchDir, 0o755); err != nil {
		return fmt.Errorf("create batch directory: %w", err)
	}

	for i, frame := range frames {
		name := fmt.Sprintf("Frame_%0*d_%d.jpg", digits, startFrame+i, totalFrames)
		if ok := gocv.IMWrite(filepath.Join(batchDir, name), frame); !ok {
			return fmt.Errorf("write frame %d to %s", startFrame+i, batchDir)
		}
	}

	videoPath := filepath.Join(batchDir, fmt.Sprintf("mini_video_%04d.mp4", batchIndex))
	writer, err := gocv.VideoWriterFile(videoPath, "mp4v", fps, width, height, true)
	if err != nil {
		return fmt.Errorf("create mini video: %w", err)
	}
	defer writer.Close()

	for _, frame := range frames {
		if err := writer.Write(frame); err != nil {
			return fmt.Errorf("write mini video frame: %w", err)
		}
	}
	return nil
}
