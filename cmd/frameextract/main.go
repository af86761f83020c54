// Command frameextract splits a video into batches of consecutive frames,
// writing each batch as numbered JPEGs plus an mp4 mini-video. The batches
// are the raw material the annotation workflow labels segment by segment.
package main

import (
	"flag"
	"fmt"
	"os"

	"smoke-annotator/internal/video"
)

func main() {
	videoPath := flag.String("video", "", "Path to the source video")
	outDir := flag.String("out", "generated_videos", "Output directory")
	startFrame := flag.Int("start-frame", 0, "First frame index to extract")
	frameSkip := flag.Int("frame-skip", 0, "Frames skipped between batches")
	consecutive := flag.Int("consecutive-frames", 1, "Frames per batch")
	totalOnly := flag.Bool("total-frames", false, "Print the total frame count and exit")
	flag.Parse()

	if *videoPath == "" {
		fmt.Println("Usage: frameextract -video <path> [-out <dir>] [-start-frame N] [-frame-skip N] [-consecutive-frames N] [-total-frames]")
		os.Exit(1)
	}

	if *totalOnly {
		r, err := video.Open(*videoPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		defer r.Close()
		fmt.Printf("Total number of frames: %d\n", r.FrameCount())
		return
	}

	opts := video.BatchOptions{
		StartFrame:  *startFrame,
		FrameSkip:   *frameSkip,
		Consecutive: *consecutive,
	}

	batches, err := video.ExtractBatches(*videoPath, *outDir, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed after %d batches: %v\n", batches, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d batches to %s\n", batches, *outDir)
}
