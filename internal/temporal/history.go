package temporal

import (
	"runtime"
	"sync"

	"gocv.io/x/gocv"
)

// RegionHistory is the time-ordered sequence of one region's per-frame
// saturation histograms, one entry per input frame.
type RegionHistory [][]float64

// BuildHistories standardizes every frame and computes its saturation
// histogram for each region. The result has one history per region, and
// each history's length equals len(frames); a short or long sequence is
// not rejected here, the renderer fixes the temporal dimension up later.
//
// Frames are processed in parallel by stripes. Every histogram is written
// to its own (region, frame) slot, so the output is deterministic.
func BuildHistories(frames []gocv.Mat, regions []Region, cfg Config) []RegionHistory {
	histories := make([]RegionHistory, len(regions))
	for i := range histories {
		histories[i] = make(RegionHistory, len(frames))
	}
	if len(frames) == 0 {
		return histories
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > len(frames) {
		numWorkers = len(frames)
	}
	framesPerWorker := (len(frames) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * framesPerWorker
		end := start + framesPerWorker
		if end > len(frames) {
			end = len(frames)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for f := start; f < end; f++ {
				std, owned := StandardizeFrame(frames[f], cfg.FrameWidth, cfg.FrameHeight)
				for r := range regions {
					histories[r][f] = SaturationHistogram(std, regions[r].Bounds, cfg.NumBins)
				}
				if owned {
					std.Close()
				}
			}
		}(start, end)
	}
	wg.Wait()

	return histories
}
