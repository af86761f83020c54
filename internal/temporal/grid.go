package temporal

import (
	"fmt"
	"image"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RegionStatus classifies how a region's block was produced.
type RegionStatus int

const (
	// RegionOK means the block was rendered from intact history data.
	RegionOK RegionStatus = iota
	// RegionRepaired means gaps were filled by a documented repair rule
	// (zero rows, padding, uniform or mid-gray fill).
	RegionRepaired
	// RegionFailed means the history was unusable and the block is all-zero.
	RegionFailed
)

func (s RegionStatus) String() string {
	switch s {
	case RegionOK:
		return "ok"
	case RegionRepaired:
		return "repaired"
	case RegionFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// RegionReport describes the outcome of rendering one region's block.
type RegionReport struct {
	Region int // region index, 0..8 row-major
	Status RegionStatus
	Reason string // empty for RegionOK
}

// RenderGrid validates, repairs and independently normalizes the 9 region
// histories and tiles the resulting 64x64 blocks onto the 192x192 output
// image. Each region is processed in isolation: a broken history blacks
// out its own quadrant and never affects the other 8 or fails the call.
// Only a history count other than 9 is an error.
//
// Regions render concurrently; each goroutine writes a disjoint quadrant,
// so the output is deterministic.
func RenderGrid(histories []RegionHistory, cfg Config) (*image.Gray, []RegionReport, error) {
	if len(histories) != cfg.NumRegions {
		return nil, nil, fmt.Errorf("expected %d region histories, got %d", cfg.NumRegions, len(histories))
	}

	img := image.NewGray(image.Rect(0, 0, OutputSize, OutputSize))
	reports := make([]RegionReport, len(histories))

	var wg sync.WaitGroup
	for i := range histories {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = renderRegion(img, i, histories[i], cfg)
		}(i)
	}
	wg.Wait()

	return img, reports, nil
}

// renderRegion renders one region's block into its quadrant. A panic in
// the block pipeline is caught here: the quadrant is zeroed and reported
// as failed, never unwound past the region boundary.
func renderRegion(img *image.Gray, idx int, history RegionHistory, cfg Config) (report RegionReport) {
	defer func() {
		if r := recover(); r != nil {
			fillBlock(img, idx, 0)
			report = RegionReport{Region: idx, Status: RegionFailed, Reason: fmt.Sprintf("panic: %v", r)}
		}
	}()

	block, status, reason := renderBlock(history, cfg)
	if status == RegionFailed {
		fillBlock(img, idx, 0)
	} else {
		writeBlock(img, idx, block)
	}
	return RegionReport{Region: idx, Status: status, Reason: reason}
}

// renderBlock builds one region's 64x64 block: stack the history into a
// (TemporalLength x NumBins) matrix with the dimension fix-up applied,
// then min-max normalize the whole matrix to [0,255].
//
// The fix-up runs before normalization: rows beyond TemporalLength are
// dropped and have no influence on the output, while padded zero rows
// share the matrix min/max with the real data.
func renderBlock(history RegionHistory, cfg Config) ([]uint8, RegionStatus, string) {
	if cfg.TemporalLength != BlockSize || cfg.NumBins != BlockSize {
		// Defensive: placement requires region-sized blocks.
		return nil, RegionFailed, fmt.Sprintf("block %dx%d does not fit a %dx%d quadrant",
			cfg.TemporalLength, cfg.NumBins, BlockSize, BlockSize)
	}

	status := RegionOK
	reason := ""
	repaired := func(why string) {
		if status == RegionOK {
			status, reason = RegionRepaired, why
		}
	}

	if len(history) == 0 {
		// An entirely missing history renders as an all-black block.
		repaired("empty history")
	}

	// Entries must agree on a single bin count before they can be stacked.
	numCols := 0
	for _, entry := range history {
		if len(entry) > 0 {
			numCols = len(entry)
			break
		}
	}
	if numCols == 0 && len(history) > 0 {
		repaired("all histogram entries empty")
	}

	numRows := len(history)
	if numRows > cfg.TemporalLength {
		numRows = cfg.TemporalLength
		repaired(fmt.Sprintf("clamped %d temporal frames to %d", len(history), cfg.TemporalLength))
	} else if numRows > 0 && numRows < cfg.TemporalLength {
		repaired(fmt.Sprintf("padded %d temporal frames to %d", numRows, cfg.TemporalLength))
	}

	copyCols := numCols
	if copyCols > cfg.NumBins {
		copyCols = cfg.NumBins
		repaired(fmt.Sprintf("clamped %d histogram bins to %d", numCols, cfg.NumBins))
	} else if copyCols > 0 && copyCols < cfg.NumBins {
		repaired(fmt.Sprintf("padded %d histogram bins to %d", numCols, cfg.NumBins))
	}

	// Stack into a zero-initialized TemporalLength x NumBins matrix.
	// Missing rows and bins stay zero; negatives clip to zero. Histograms
	// are never rescaled here, the raw values feed the normalization.
	raw := mat.NewDense(cfg.TemporalLength, cfg.NumBins, nil)
	for f := 0; f < numRows; f++ {
		entry := history[f]
		if len(entry) == 0 {
			repaired(fmt.Sprintf("empty histogram at frame %d", f))
			continue
		}
		if len(entry) != numCols {
			return nil, RegionFailed, fmt.Sprintf("histogram length %d at frame %d, expected %d", len(entry), f, numCols)
		}
		for b := 0; b < copyCols; b++ {
			v := entry[b]
			if v < 0 {
				v = 0
			}
			raw.Set(f, b, v)
		}
	}

	data := raw.RawMatrix().Data

	// Independent min-max normalization over the whole matrix. Each region
	// spans its own full dynamic range; a global min/max would flatten the
	// per-region contrast the classifier is trained on.
	if floats.HasNaN(data) {
		fill(data, 128)
		repaired("non-finite values in history")
		return quantize(data), status, reason
	}
	lo, hi := floats.Min(data), floats.Max(data)
	switch {
	case math.IsInf(lo, 0) || math.IsInf(hi, 0):
		fill(data, 128)
		repaired("non-finite normalization range")
	case hi == lo && hi > 0:
		// Uniform non-empty region renders all-white.
		fill(data, 255)
		repaired("uniform history")
	case hi == lo:
		// Uniform all-zero region stays all-black.
		fill(data, 0)
		repaired("empty history data")
	default:
		scale := 255.0 / (hi - lo)
		for i, v := range data {
			data[i] = (v - lo) * scale
		}
	}

	return quantize(data), status, reason
}

// quantize truncates non-negative values in [0,255] to bytes.
func quantize(data []float64) []uint8 {
	out := make([]uint8, len(data))
	for i, v := range data {
		out[i] = uint8(v)
	}
	return out
}

func fill(data []float64, v float64) {
	for i := range data {
		data[i] = v
	}
}

// writeBlock copies a row-major 64x64 block into region idx's quadrant.
func writeBlock(img *image.Gray, idx int, block []uint8) {
	x0 := (idx % GridCols) * BlockSize
	y0 := (idx / GridCols) * BlockSize
	for y := 0; y < BlockSize; y++ {
		row := img.Pix[(y0+y)*img.Stride+x0:]
		copy(row[:BlockSize], block[y*BlockSize:(y+1)*BlockSize])
	}
}

// fillBlock sets every pixel of region idx's quadrant to v.
func fillBlock(img *image.Gray, idx int, v uint8) {
	x0 := (idx % GridCols) * BlockSize
	y0 := (idx / GridCols) * BlockSize
	for y := 0; y < BlockSize; y++ {
		row := img.Pix[(y0+y)*img.Stride+x0 : (y0+y)*img.Stride+x0+BlockSize]
		for x := range row {
			row[x] = v
		}
	}
}
