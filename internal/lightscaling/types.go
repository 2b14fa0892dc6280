package lightscaling

// Sample is one row of the light scaling comparison: both renderers timed at
// the same light count.
type Sample struct {
	LightCount     int     `csv:"LightCount"`
	ForwardFPS     float64 `csv:"ForwardFPS"`
	ForwardTimeMs  float64 `csv:"ForwardTimeMs"`
	DeferredFPS    float64 `csv:"DeferredFPS"`
	DeferredTimeMs float64 `csv:"DeferredTimeMs"`
	Winner         string  `csv:"Winner"`
	Speedup        float64 `csv:"Speedup"`
}

// CrossoverThreshold is the speedup above which deferred rendering is faster.
const CrossoverThreshold = 1.0

const (
	FPSChart        = "light_scaling_fps.png"
	FrameTimeChart  = "light_scaling_frame_time.png"
	SpeedupChart    = "light_scaling_speedup.png"
	NormalizedChart = "light_scaling_normalized.png"
	CombinedChart   = "light_scaling_combined.png"
	HTMLReport      = "light_scaling.html"
)

// Charts lists the files written by RenderCharts, in order.
var Charts = []string{FPSChart, FrameTimeChart, SpeedupChart, NormalizedChart, CombinedChart}
