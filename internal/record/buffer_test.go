package record

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSample(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1.0, 32767},
		{-1.0, -32767},
		{0.5, 16384},
		{-0.5, -16384},
		{2.0, 32767},
		{-2.0, -32768},
		{float32(math.Inf(1)), 32767},
		{float32(math.Inf(-1)), -32768},
		{float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConvertSample(tt.in), "ConvertSample(%v)", tt.in)
	}
}

func TestSampleBufferSnapshotIsCopy(t *testing.T) {
	var b SampleBuffer
	b.AppendFloat([]float32{0.5, -0.5})

	snap := b.Snapshot()
	require.Equal(t, []int16{16384, -16384}, snap)

	snap[0] = 1
	assert.Equal(t, []int16{16384, -16384}, b.Snapshot())

	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.NotNil(t, b.Snapshot())
	assert.Empty(t, b.Snapshot())
}

func TestSampleBufferConcurrentAppend(t *testing.T) {
	var b SampleBuffer
	chunk := make([]float32, 160)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.AppendFloat(chunk)
				_ = b.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*50*160, b.Len())
}
