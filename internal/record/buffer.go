package record

import (
	"math"
	"slices"
	"sync"
)

// ConvertSample maps a float sample in [-1, 1] to signed 16-bit PCM.
// Out-of-range input saturates; NaN becomes silence.
func ConvertSample(x float32) int16 {
	if x != x {
		return 0
	}
	v := math.Round(float64(x) * 32767)
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// SampleBuffer accumulates captured samples. It is shared between the audio
// callback thread and the goroutine that stops the recording.
type SampleBuffer struct {
	mu      sync.Mutex
	samples []int16
}

// AppendFloat converts and appends one callback's worth of input.
func (b *SampleBuffer) AppendFloat(in []float32) {
	if len(in) == 0 {
		return
	}
	conv := make([]int16, len(in))
	for i, x := range in {
		conv[i] = ConvertSample(x)
	}
	b.mu.Lock()
	b.samples = append(b.samples, conv...)
	b.mu.Unlock()
}

func (b *SampleBuffer) Reset() {
	b.mu.Lock()
	b.samples = b.samples[:0]
	b.mu.Unlock()
}

// Snapshot returns a copy of everything captured so far.
func (b *SampleBuffer) Snapshot() []int16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.samples) == 0 {
		return []int16{}
	}
	return slices.Clone(b.samples)
}

func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples)
}
