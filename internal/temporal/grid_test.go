package temporal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeHistory builds a history of rows histograms with bins values each,
// filled by f(row, bin).
func makeHistory(rows, bins int, f func(row, bin int) float64) RegionHistory {
	h := make(RegionHistory, rows)
	for r := 0; r < rows; r++ {
		h[r] = make([]float64, bins)
		for b := 0; b < bins; b++ {
			h[r][b] = f(r, b)
		}
	}
	return h
}

// emptyHistories returns 9 empty region histories.
func emptyHistories() []RegionHistory {
	return make([]RegionHistory, 9)
}

func TestRenderGridShape(t *testing.T) {
	cfg := DefaultConfig()

	img, reports, err := RenderGrid(emptyHistories(), cfg)
	require.NoError(t, err)
	require.NotNil(t, img)

	assert.Equal(t, OutputSize, img.Bounds().Dx())
	assert.Equal(t, OutputSize, img.Bounds().Dy())
	assert.Len(t, reports, 9)
	for _, rep := range reports {
		assert.Equal(t, RegionRepaired, rep.Status)
		assert.Equal(t, "empty history", rep.Reason)
	}
	for _, px := range img.Pix {
		require.Zero(t, px)
	}
}

func TestRenderGridRejectsWrongRegionCount(t *testing.T) {
	cfg := DefaultConfig()

	_, _, err := RenderGrid(make([]RegionHistory, 8), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 9 region histories")
}

func TestUniformRegionRule(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("constant positive renders all-white", func(t *testing.T) {
		histories := emptyHistories()
		histories[0] = makeHistory(64, 64, func(int, int) float64 { return 0.015625 })

		img, reports, err := RenderGrid(histories, cfg)
		require.NoError(t, err)
		assert.Equal(t, RegionRepaired, reports[0].Status)

		for _, px := range grabBlock(img.Pix, img.Stride, 0) {
			require.Equal(t, uint8(255), px)
		}
	})

	t.Run("constant zero renders all-black", func(t *testing.T) {
		histories := emptyHistories()
		histories[0] = makeHistory(64, 64, func(int, int) float64 { return 0 })

		img, _, err := RenderGrid(histories, cfg)
		require.NoError(t, err)

		for _, px := range grabBlock(img.Pix, img.Stride, 0) {
			require.Equal(t, uint8(0), px)
		}
	})
}

func TestScaleInvariance(t *testing.T) {
	cfg := DefaultConfig()
	pattern := func(row, bin int) float64 { return float64((row*31+bin*7)%97) / 96 }

	histories := emptyHistories()
	histories[4] = makeHistory(64, 64, pattern)
	base, _, err := RenderGrid(histories, cfg)
	require.NoError(t, err)

	// Power-of-two factors scale exactly in float arithmetic, so the
	// comparison can demand byte-identical output.
	for _, factor := range []float64{0.25, 4, 1024} {
		scaled := emptyHistories()
		scaled[4] = makeHistory(64, 64, func(row, bin int) float64 { return factor * pattern(row, bin) })
		got, _, err := RenderGrid(scaled, cfg)
		require.NoError(t, err)

		assert.Equal(t, base.Pix, got.Pix, "factor %v", factor)
	}
}

func TestShortHistoryPadsRows(t *testing.T) {
	cfg := DefaultConfig()
	pattern := func(row, bin int) float64 { return 0.5 + float64(row%5)*0.1 + float64(bin%3)*0.01 }

	short := emptyHistories()
	short[0] = makeHistory(40, 64, pattern)
	gotShort, reports, err := RenderGrid(short, cfg)
	require.NoError(t, err)
	assert.Equal(t, RegionRepaired, reports[0].Status)
	assert.Contains(t, reports[0].Reason, "padded 40 temporal frames")

	// The padded rows join the matrix before normalization, so the block
	// must match an explicitly zero-padded 64-row history.
	padded := emptyHistories()
	padded[0] = makeHistory(64, 64, func(row, bin int) float64 {
		if row >= 40 {
			return 0
		}
		return pattern(row, bin)
	})
	gotPadded, _, err := RenderGrid(padded, cfg)
	require.NoError(t, err)

	assert.Equal(t, gotPadded.Pix, gotShort.Pix)

	// Padded rows render as zero rows.
	block := grabBlock(gotShort.Pix, gotShort.Stride, 0)
	for i := 40 * 64; i < 64*64; i++ {
		require.Zero(t, block[i])
	}
}

func TestLongHistoryIgnoresExtraRows(t *testing.T) {
	cfg := DefaultConfig()
	pattern := func(row, bin int) float64 { return float64((row+bin)%17) / 16 }

	long := emptyHistories()
	long[0] = makeHistory(70, 64, func(row, bin int) float64 {
		if row >= 64 {
			// Extreme values that would shift min/max if they leaked in.
			return 1e9
		}
		return pattern(row, bin)
	})
	gotLong, reports, err := RenderGrid(long, cfg)
	require.NoError(t, err)
	assert.Equal(t, RegionRepaired, reports[0].Status)
	assert.Contains(t, reports[0].Reason, "clamped 70 temporal frames")

	exact := emptyHistories()
	exact[0] = makeHistory(64, 64, pattern)
	gotExact, _, err := RenderGrid(exact, cfg)
	require.NoError(t, err)

	assert.Equal(t, gotExact.Pix, gotLong.Pix)
}

func TestBinFixup(t *testing.T) {
	cfg := DefaultConfig()
	pattern := func(row, bin int) float64 { return float64((row*3+bin)%11) / 10 }

	t.Run("narrow histograms pad on the right", func(t *testing.T) {
		narrow := emptyHistories()
		narrow[0] = makeHistory(64, 40, pattern)
		got, reports, err := RenderGrid(narrow, cfg)
		require.NoError(t, err)
		assert.Contains(t, reports[0].Reason, "padded 40 histogram bins")

		wide := emptyHistories()
		wide[0] = makeHistory(64, 64, func(row, bin int) float64 {
			if bin >= 40 {
				return 0
			}
			return pattern(row, bin)
		})
		want, _, err := RenderGrid(wide, cfg)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, got.Pix)
	})

	t.Run("wide histograms truncate", func(t *testing.T) {
		wide := emptyHistories()
		wide[0] = makeHistory(64, 80, func(row, bin int) float64 {
			if bin >= 64 {
				return 1e9
			}
			return pattern(row, bin)
		})
		got, reports, err := RenderGrid(wide, cfg)
		require.NoError(t, err)
		assert.Contains(t, reports[0].Reason, "clamped 80 histogram bins")

		exact := emptyHistories()
		exact[0] = makeHistory(64, 64, pattern)
		want, _, err := RenderGrid(exact, cfg)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, got.Pix)
	})
}

func TestRegionIsolation(t *testing.T) {
	cfg := DefaultConfig()
	pattern := func(row, bin int) float64 { return float64((row*13+bin)%29) / 28 }

	intact := make([]RegionHistory, 9)
	for i := range intact {
		intact[i] = makeHistory(64, 64, pattern)
	}
	base, baseReports, err := RenderGrid(intact, cfg)
	require.NoError(t, err)
	for _, rep := range baseReports {
		assert.Equal(t, RegionOK, rep.Status)
	}

	corrupt := make([]RegionHistory, 9)
	for i := range corrupt {
		corrupt[i] = makeHistory(64, 64, pattern)
	}
	// A wrong-length entry is a structural fault for region 5 only.
	corrupt[5][10] = make([]float64, 17)

	got, reports, err := RenderGrid(corrupt, cfg)
	require.NoError(t, err)
	assert.Equal(t, RegionFailed, reports[5].Status)
	assert.Contains(t, reports[5].Reason, "histogram length 17")

	for i := 0; i < 9; i++ {
		gotBlock := grabBlock(got.Pix, got.Stride, i)
		if i == 5 {
			for _, px := range gotBlock {
				require.Zero(t, px)
			}
			continue
		}
		assert.Equal(t, grabBlock(base.Pix, base.Stride, i), gotBlock, "region %d changed", i)
	}
}

func TestNonFiniteRangeFallsBackToMidGray(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("NaN", func(t *testing.T) {
		histories := emptyHistories()
		histories[0] = makeHistory(64, 64, func(row, bin int) float64 {
			if row == 3 && bin == 3 {
				return math.NaN()
			}
			return float64(bin)
		})
		img, reports, err := RenderGrid(histories, cfg)
		require.NoError(t, err)
		assert.Equal(t, RegionRepaired, reports[0].Status)
		for _, px := range grabBlock(img.Pix, img.Stride, 0) {
			require.Equal(t, uint8(128), px)
		}
	})

	t.Run("positive infinity", func(t *testing.T) {
		histories := emptyHistories()
		histories[0] = makeHistory(64, 64, func(row, bin int) float64 {
			if row == 0 && bin == 0 {
				return math.Inf(1)
			}
			return float64(bin)
		})
		img, reports, err := RenderGrid(histories, cfg)
		require.NoError(t, err)
		assert.Equal(t, RegionRepaired, reports[0].Status)
		for _, px := range grabBlock(img.Pix, img.Stride, 0) {
			require.Equal(t, uint8(128), px)
		}
	})
}

func TestNegativeValuesClipToZero(t *testing.T) {
	cfg := DefaultConfig()

	negative := emptyHistories()
	negative[0] = makeHistory(64, 64, func(row, bin int) float64 {
		if bin == 0 {
			return -5
		}
		return float64(bin)
	})
	clipped := emptyHistories()
	clipped[0] = makeHistory(64, 64, func(row, bin int) float64 {
		if bin == 0 {
			return 0
		}
		return float64(bin)
	})

	got, _, err := RenderGrid(negative, cfg)
	require.NoError(t, err)
	want, _, err := RenderGrid(clipped, cfg)
	require.NoError(t, err)
	assert.Equal(t, want.Pix, got.Pix)
}

func TestEmptyEntriesBecomeZeroRows(t *testing.T) {
	cfg := DefaultConfig()

	histories := emptyHistories()
	histories[0] = makeHistory(64, 64, func(row, bin int) float64 { return float64(row + bin) })
	histories[0][20] = nil
	histories[0][21] = []float64{}

	img, reports, err := RenderGrid(histories, cfg)
	require.NoError(t, err)
	assert.Equal(t, RegionRepaired, reports[0].Status)

	block := grabBlock(img.Pix, img.Stride, 0)
	for b := 0; b < 64; b++ {
		assert.Zero(t, block[20*64+b])
		assert.Zero(t, block[21*64+b])
	}
}

func TestRenderGridDeterminism(t *testing.T) {
	cfg := DefaultConfig()

	histories := make([]RegionHistory, 9)
	for i := range histories {
		i := i
		histories[i] = makeHistory(64, 64, func(row, bin int) float64 {
			return float64((row*i + bin*(i+1)) % 53)
		})
	}

	first, _, err := RenderGrid(histories, cfg)
	require.NoError(t, err)
	for n := 0; n < 5; n++ {
		again, _, err := RenderGrid(histories, cfg)
		require.NoError(t, err)
		require.Equal(t, first.Pix, again.Pix)
	}
}

func TestBlockPlacement(t *testing.T) {
	cfg := DefaultConfig()

	// Only the center region carries data; its quadrant must be the only
	// non-black one and sit at rows/cols [64,128).
	histories := emptyHistories()
	histories[4] = makeHistory(64, 64, func(int, int) float64 { return 1 })

	img, _, err := RenderGrid(histories, cfg)
	require.NoError(t, err)

	for y := 0; y < OutputSize; y++ {
		for x := 0; x < OutputSize; x++ {
			px := img.GrayAt(x, y).Y
			if x >= 64 && x < 128 && y >= 64 && y < 128 {
				require.Equal(t, uint8(255), px)
			} else {
				require.Equal(t, uint8(0), px)
			}
		}
	}
}

// grabBlock copies region idx's 64x64 quadrant out of a 192-wide Pix slice.
func grabBlock(pix []uint8, stride, idx int) []uint8 {
	x0 := (idx % GridCols) * BlockSize
	y0 := (idx / GridCols) * BlockSize

	block := make([]uint8, 0, BlockSize*BlockSize)
	for y := 0; y < BlockSize; y++ {
		row := pix[(y0+y)*stride+x0 : (y0+y)*stride+x0+BlockSize]
		block = append(block, row...)
	}
	return block
}
