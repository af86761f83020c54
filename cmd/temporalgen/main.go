// Command temporalgen renders a temporal saturation grid from a directory
// of frame images and writes it as a PNG. Useful for inspecting what the
// classifier will actually be trained on.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"smoke-annotator/internal/temporal"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// previewScale is the nearest-neighbor upscale factor for -preview output.
const previewScale = 4

func main() {
	framesDir := flag.String("frames", "", "Directory of frame images (JPEG, PNG, TIFF, or BMP), sorted by name")
	outPath := flag.String("out", "temporal_grid.png", "Output PNG path")
	previewPath := flag.String("preview", "", "Optional upscaled preview PNG path")
	flag.Parse()

	if *framesDir == "" {
		fmt.Println("Usage: temporalgen -frames <dir> [-out grid.png] [-preview preview.png]")
		os.Exit(1)
	}

	paths, err := listFrameFiles(*framesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list frames: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No frame images in %s\n", *framesDir)
		os.Exit(1)
	}
	fmt.Printf("Loading %d frames from %s\n", len(paths), *framesDir)

	frames := make([]gocv.Mat, 0, len(paths))
	defer func() {
		for i := range frames {
			frames[i].Close()
		}
	}()
	for _, path := range paths {
		mat, err := loadFrame(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
			os.Exit(1)
		}
		frames = append(frames, mat)
	}

	gen, err := temporal.NewGenerator(temporal.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create generator: %v\n", err)
		os.Exit(1)
	}

	grid, reports, err := gen.GenerateWithReports(frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
	for _, rep := range reports {
		if rep.Status != temporal.RegionOK {
			fmt.Printf("Region %d %s: %s\n", rep.Region+1, rep.Status, rep.Reason)
		}
	}

	if err := imaging.Save(grid, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save grid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %dx%d grid to %s\n", grid.Bounds().Dx(), grid.Bounds().Dy(), *outPath)

	if *previewPath != "" {
		size := temporal.OutputSize * previewScale
		preview := imaging.Resize(grid, size, size, imaging.NearestNeighbor)
		if err := imaging.Save(preview, *previewPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %dx%d preview to %s\n", size, size, *previewPath)
	}
}

// listFrameFiles returns the frame image paths in dir, sorted by name.
func listFrameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".jpg", ".jpeg", ".png", ".tif", ".tiff", ".bmp":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// loadFrame decodes one frame image into a BGR Mat.
func loadFrame(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, err
	}
	return temporal.ImageToMat(img), nil
}
