// Package main provides the headless smoke segment annotator. It reads a
// list of annotated video segments, renders each segment's temporal
// saturation grid image and persists the dataset files (PNG, YOLO label,
// annotation summary).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"smoke-annotator/internal/dataset"
	"smoke-annotator/internal/temporal"
	"smoke-annotator/internal/version"
	"smoke-annotator/internal/video"
)

// segmentSpec is one entry of the segments input file.
type segmentSpec struct {
	Video string `json:"video"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Smoke bool   `json:"smoke"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	segmentsPath := flag.String("segments", "", "Path to segments JSON file ([{video, start, end, smoke}, ...])")
	outDir := flag.String("out", "smoke_detection_annotations", "Dataset output directory")
	flag.Parse()

	if *segmentsPath == "" {
		fmt.Println("Usage: smoke-annotator -segments <segments.json> [-out <dir>]")
		os.Exit(1)
	}
	log.Printf("Starting smoke-annotator v%s", version.Version)

	specs, err := loadSegments(*segmentsPath)
	if err != nil {
		log.Fatalf("Failed to load segments: %v", err)
	}
	if len(specs) == 0 {
		log.Fatalf("No segments in %s", *segmentsPath)
	}

	gen, err := temporal.NewGenerator(temporal.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to create generator: %v", err)
	}

	writer, err := dataset.NewWriter(*outDir)
	if err != nil {
		log.Fatalf("Failed to create dataset writer: %v", err)
	}

	var failed int
	for _, spec := range specs {
		if err := annotateSegment(gen, writer, spec); err != nil {
			log.Printf("Segment %s [%d-%d]: %v", spec.Video, spec.Start, spec.End, err)
			failed++
			continue
		}
		log.Printf("Annotated %s [%d-%d] smoke=%v", spec.Video, spec.Start, spec.End, spec.Smoke)
	}

	log.Printf("Done: %d segments annotated, %d failed", len(specs)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func loadSegments(path string) ([]segmentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var specs []segmentSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, s := range specs {
		if s.Video == "" || s.Start < 0 || s.End < s.Start {
			return nil, fmt.Errorf("invalid segment %+v", s)
		}
	}
	return specs, nil
}

func annotateSegment(gen *temporal.Generator, writer *dataset.Writer, spec segmentSpec) error {
	r, err := video.Open(spec.Video)
	if err != nil {
		return err
	}
	defer r.Close()

	frames, err := r.ReadSegment(spec.Start, spec.End-spec.Start+1)
	if err != nil {
		return err
	}
	defer video.CloseFrames(frames)

	grid, reports, err := gen.GenerateWithReports(frames)
	if err != nil {
		return err
	}
	for _, rep := range reports {
		if rep.Status != temporal.RegionOK {
			log.Printf("Region %d %s: %s", rep.Region+1, rep.Status, rep.Reason)
		}
	}

	return writer.SaveSegment(spec.Video, spec.Start, spec.End, grid, spec.Smoke)
}
