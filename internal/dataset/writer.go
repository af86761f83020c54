// Package dataset persists temporal grid images and their YOLO-style
// annotations in the directory layout the training pipeline consumes:
//
//	<root>/images/<key>.png
//	<root>/labels/<key>.txt
//	<root>/classes.txt
//	<root>/all_annotations_summary.json
package dataset

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

const (
	imagesDirName   = "images"
	labelsDirName   = "labels"
	classesFileName = "classes.txt"
	summaryFileName = "all_annotations_summary.json"
)

// Writer persists annotated segments under a root directory.
type Writer struct {
	root string
}

// NewWriter creates the dataset layout under root and returns a writer
// for it. An existing dataset is reused; classes.txt is only written when
// absent.
func NewWriter(root string) (*Writer, error) {
	for _, dir := range []string{root, filepath.Join(root, imagesDirName), filepath.Join(root, labelsDirName)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dataset directory: %w", err)
		}
	}

	w := &Writer{root: root}
	if err := w.ensureClasses(); err != nil {
		return nil, err
	}
	return w, nil
}

// Root returns the dataset root directory.
func (w *Writer) Root() string { return w.root }

// SegmentKey builds the canonical file key for one annotated segment of a
// video: "<video base>_frames_<start>_<end>" with zero-padded frame numbers.
func SegmentKey(videoPath string, start, end int) string {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return fmt.Sprintf("%s_frames_%06d_%06d", base, start, end)
}

// SaveSegment persists one annotated segment: the grid image as PNG, the
// YOLO label, and the segment's entry in the annotation summary. Existing
// entries for other segments and videos are preserved.
func (w *Writer) SaveSegment(videoPath string, start, end int, grid *image.Gray, hasSmoke bool) error {
	key := SegmentKey(videoPath, start, end)

	imgPath := filepath.Join(w.root, imagesDirName, key+".png")
	if err := writePNG(imgPath, grid); err != nil {
		return fmt.Errorf("segment %s: %w", key, err)
	}

	labelPath := filepath.Join(w.root, labelsDirName, key+".txt")
	if err := WriteLabel(labelPath, hasSmoke); err != nil {
		return fmt.Errorf("segment %s: %w", key, err)
	}

	ann := SegmentAnnotation{
		StartFrame: start,
		EndFrame:   end,
		HasSmoke:   hasSmoke,
	}
	if err := w.updateSummary(videoPath, fmt.Sprintf("frames_%06d_%06d", start, end), ann); err != nil {
		return fmt.Errorf("segment %s: %w", key, err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
