package nfl

import (
	"errors"
	"fmt"
)

// RendererSummary is the per-renderer row of the NFL comparison CSV.
type RendererSummary struct {
	Renderer       string  `csv:"Renderer"`
	TotalTimeMs    float64 `csv:"TotalTimeMs"`
	AvgFrameTimeMs float64 `csv:"AvgFrameTimeMs"`
	FPS            float64 `csv:"FPS"`
	MinFrameTimeMs float64 `csv:"MinFrameTimeMs"`
	MaxFrameTimeMs float64 `csv:"MaxFrameTimeMs"`
}

const (
	Forward  = "Forward"
	Deferred = "Deferred"
)

const (
	ChartFile   = "nfl_renderer_comparison.png"
	SummaryFile = "nfl_renderer_comparison_summary.txt"
	HTMLFile    = "nfl_renderer_comparison.html"
)

var (
	ErrMissingForward  = errors.New("forward renderer data not available")
	ErrMissingDeferred = errors.New("deferred renderer data not available")
	ErrInvalidTiming   = errors.New("invalid renderer timing")
)

// Comparison pairs the forward and deferred summaries of one run.
type Comparison struct {
	Forward  RendererSummary
	Deferred RendererSummary
}

// Speedup is how many times less total time the deferred renderer needed.
// Validate checks the values Speedup and FPSImprovement divide by.
func (c *Comparison) Validate() error {
	if c.Deferred.TotalTimeMs <= 0 {
		return fmt.Errorf("%w: %s total time is %v ms", ErrInvalidTiming, Deferred, c.Deferred.TotalTimeMs)
	}
	if c.Forward.FPS <= 0 {
		return fmt.Errorf("%w: %s FPS is %v", ErrInvalidTiming, Forward, c.Forward.FPS)
	}
	return nil
}

func (c *Comparison) Speedup() float64 {
	return c.Forward.TotalTimeMs / c.Deferred.TotalTimeMs
}

// FPSImprovement is the deferred FPS gain over forward, in percent.
func (c *Comparison) FPSImprovement() float64 {
	return (c.Deferred.FPS/c.Forward.FPS - 1.0) * 100.0
}

func (c *Comparison) Winner() string {
	if c.Speedup() > 1.0 {
		return Deferred
	}
	return Forward
}
