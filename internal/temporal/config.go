// Package temporal generates temporal saturation-histogram grid images.
// A 64-frame video segment is reduced to a single 192x192 grayscale image:
// the frame is split into 9 overlapping regions, each region's saturation
// histogram is tracked across the sequence, and the 9 time-by-bin matrices
// are independently normalized and tiled on a 3x3 grid. The result is the
// training input for a binary smoke classifier.
package temporal

import "fmt"

// Grid geometry. The 3x3 layout is hard-wired: block placement, the output
// resolution and the downstream label format all assume it.
const (
	GridRows   = 3
	GridCols   = 3
	BlockSize  = 64
	OutputSize = GridRows * BlockSize
)

// Config holds the generator parameters, fixed at construction.
type Config struct {
	FrameWidth     int // canonical frame width frames are resized to
	FrameHeight    int // canonical frame height
	NumRegions     int // must be 9
	NumBins        int // histogram bins per region
	TemporalLength int // expected frames per sequence
}

// DefaultConfig returns the standard configuration: 1920x1080 frames,
// 9 regions, 64 bins, 64 frames.
func DefaultConfig() Config {
	return Config{
		FrameWidth:     1920,
		FrameHeight:    1080,
		NumRegions:     9,
		NumBins:        64,
		TemporalLength: 64,
	}
}

// Validate checks the configuration. NumRegions must be exactly 9; the
// grid layout and block placement depend on it.
func (c Config) Validate() error {
	if c.NumRegions != GridRows*GridCols {
		return fmt.Errorf("num regions must be %d for the 3x3 grid, got %d", GridRows*GridCols, c.NumRegions)
	}
	if c.NumBins <= 0 {
		return fmt.Errorf("num bins must be positive, got %d", c.NumBins)
	}
	if c.TemporalLength <= 0 {
		return fmt.Errorf("temporal length must be positive, got %d", c.TemporalLength)
	}
	return nil
}
