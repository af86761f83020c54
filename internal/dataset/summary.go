package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SegmentAnnotation is one segment's entry in the annotation summary.
type SegmentAnnotation struct {
	StartFrame int  `json:"start_frame"`
	EndFrame   int  `json:"end_frame"`
	HasSmoke   bool `json:"has_smoke"`
}

// Summary maps source video path to its segment annotations, keyed by
// segment key ("frames_<start>_<end>").
type Summary map[string]map[string]SegmentAnnotation

// LoadSummary reads an annotation summary file. A missing or unreadable
// file yields an empty summary, not an error: the summary is rebuilt
// entry by entry and a corrupt file must not block annotation.
func LoadSummary(path string) Summary {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}
	}
	return s
}

// Save writes the summary to path as indented JSON.
func (s Summary) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Merge folds other into s: new videos are added, and for shared videos
// the other summary's segments win key-wise while unrelated segments are
// preserved.
func (s Summary) Merge(other Summary) {
	for video, segments := range other {
		if s[video] == nil {
			s[video] = make(map[string]SegmentAnnotation, len(segments))
		}
		for key, ann := range segments {
			s[video][key] = ann
		}
	}
}

// updateSummary loads the summary, upserts one segment entry and writes it
// back, preserving all other videos and segments.
func (w *Writer) updateSummary(videoPath, segmentKey string, ann SegmentAnnotation) error {
	path := filepath.Join(w.root, summaryFileName)

	s := LoadSummary(path)
	if s[videoPath] == nil {
		s[videoPath] = make(map[string]SegmentAnnotation, 1)
	}
	s[videoPath][segmentKey] = ann

	return s.Save(path)
}
