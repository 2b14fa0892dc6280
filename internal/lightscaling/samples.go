package lightscaling

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"k8s.io/klog/v2"
)

func init() {
	// A missing column is a schema mismatch, not a zero value.
	gocsv.FailIfUnmatchedStructTags = true
}

// Load reads the light scaling CSV at path.
func Load(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	samples, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
	}
	return samples, nil
}

// Decode parses samples keyed by the header row. Rows keep their input order.
func Decode(r io.Reader) ([]Sample, error) {
	var samples []Sample
	if err := gocsv.Unmarshal(r, &samples); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples")
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].LightCount <= samples[i-1].LightCount {
			klog.Warningf("Light counts are not ascending at row %d (%d after %d); keeping input order", i+1, samples[i].LightCount, samples[i-1].LightCount)
			break
		}
	}
	return samples, nil
}

// Crossover returns the light count of the first sample, in input order,
// whose speedup is above CrossoverThreshold.
func Crossover(samples []Sample) (int, bool) {
	for _, s := range samples {
		if s.Speedup > CrossoverThreshold {
			return s.LightCount, true
		}
	}
	return 0, false
}

// Normalize divides every value by the first one, so the result starts at 1.
func Normalize(values []float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, nil
	}
	base := values[0]
	if base == 0 {
		return nil, fmt.Errorf("cannot normalize against a zero baseline")
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / base
	}
	return out, nil
}

// Slowdown is the ratio of the last value to the first one. It reports false
// when there is no non-zero first value to compare against.
func Slowdown(values []float64) (float64, bool) {
	if len(values) == 0 || values[0] == 0 {
		return 0, false
	}
	return values[len(values)-1] / values[0], true
}

func lights(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.LightCount)
	}
	return out
}

func column(samples []Sample, get func(Sample) float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out
}

func forwardFPS(s Sample) float64     { return s.ForwardFPS }
func deferredFPS(s Sample) float64    { return s.DeferredFPS }
func forwardTimeMs(s Sample) float64  { return s.ForwardTimeMs }
func deferredTimeMs(s Sample) float64 { return s.DeferredTimeMs }
func speedup(s Sample) float64        { return s.Speedup }
