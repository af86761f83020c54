package temporal

import (
	"fmt"
	"image"
	"log"

	"gocv.io/x/gocv"
)

// Generator produces temporal grid images from frame sequences. The
// configuration and region layout are fixed at construction; calls share
// no other state, so a Generator is safe for concurrent use.
type Generator struct {
	cfg     Config
	regions []Region
}

// NewGenerator creates a generator for the given configuration.
// A NumRegions other than 9 is a construction error.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	if cfg.TemporalLength != BlockSize {
		log.Printf("temporal: recommended temporal length is %d, got %d", BlockSize, cfg.TemporalLength)
	}

	return &Generator{
		cfg:     cfg,
		regions: LayoutRegions(cfg.FrameWidth, cfg.FrameHeight),
	}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Regions returns a copy of the generator's region layout.
func (g *Generator) Regions() []Region {
	regions := make([]Region, len(g.regions))
	copy(regions, g.regions)
	return regions
}

// GenerateFromFrames converts a frame sequence into the 192x192 temporal
// grid image. Frames are borrowed read-only for the duration of the call.
// Degenerate histories repair silently; only frames that cannot be treated
// as BGR pixel buffers at all make the call fail.
func (g *Generator) GenerateFromFrames(frames []gocv.Mat) (*image.Gray, error) {
	img, _, err := g.GenerateWithReports(frames)
	return img, err
}

// GenerateWithReports is GenerateFromFrames plus the per-region repair
// reports, for callers that want the degraded regions logged.
func (g *Generator) GenerateWithReports(frames []gocv.Mat) (*image.Gray, []RegionReport, error) {
	if err := checkFrames(frames); err != nil {
		return nil, nil, err
	}
	if len(frames) != g.cfg.TemporalLength {
		log.Printf("temporal: expected %d frames, got %d", g.cfg.TemporalLength, len(frames))
	}

	histories := BuildHistories(frames, g.regions, g.cfg)
	return RenderGrid(histories, g.cfg)
}

// checkFrames rejects inputs that cannot be coerced into a BGR frame
// sequence. An empty sequence is not rejected: it renders as an all-black
// grid through the empty-history repair.
func checkFrames(frames []gocv.Mat) error {
	for i, f := range frames {
		if f.Empty() {
			return fmt.Errorf("frame %d is empty", i)
		}
		if f.Type() != gocv.MatTypeCV8UC3 {
			return fmt.Errorf("frame %d: expected 8-bit 3-channel BGR, got type %d", i, int(f.Type()))
		}
	}
	return nil
}
