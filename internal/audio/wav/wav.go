// Package wav encodes captured PCM into a self-describing WAV container.
package wav

import (
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

const (
	// SampleRate is the fixed capture rate in Hz.
	SampleRate = 16000
	// Channels is the fixed channel count.
	Channels = 1
	// BitDepth is the sample width in bits.
	BitDepth = 16
	// BytesPerSample is the sample width in bytes.
	BytesPerSample = BitDepth / 8
	// BytesPerSecond is the PCM payload rate for the fixed format.
	BytesPerSecond = SampleRate * Channels * BytesPerSample
	// HeaderSize is the size of the canonical RIFF/fmt/data header.
	HeaderSize = 44

	formatPCM = 1
)

// Encode wraps mono 16-bit samples in a WAV container.
func Encode(samples []int16, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}

	ws := newWriteSeeker(HeaderSize + len(samples)*BytesPerSample)
	enc := gowav.NewEncoder(ws, sampleRate, BitDepth, Channels, formatPCM)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: Channels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: BitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	// Write is called even for an empty buffer so the header always lands.
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize wav: %w", err)
	}
	return ws.Bytes(), nil
}

// PCMBytes is the payload size of n samples in the fixed format.
func PCMBytes(n int) int {
	return n * BytesPerSample
}

// Duration is the playback length of n samples at SampleRate.
func Duration(n int) time.Duration {
	return time.Duration(PCMBytes(n)) * time.Second / BytesPerSecond
}

// Info describes an existing WAV stream.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Format     int
	Duration   time.Duration
}

// Conforming reports whether the stream can be sent without conversion.
func (i Info) Conforming() bool {
	return i.SampleRate == SampleRate && i.Channels == Channels &&
		i.BitDepth == BitDepth && i.Format == formatPCM
}

// Inspect reads the header of a WAV stream. Duration covers the data chunk
// only.
func Inspect(r io.ReadSeeker) (Info, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return Info{}, fmt.Errorf("not a valid wav stream")
	}
	info := Info{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Format:     int(d.WavAudioFormat),
	}
	if err := d.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("locate pcm data: %w", err)
	}
	if frame := int64(info.Channels * info.BitDepth / 8); frame > 0 && info.SampleRate > 0 {
		info.Duration = time.Duration(d.PCMLen()) * time.Second / time.Duration(int64(info.SampleRate)*frame)
	}
	return info, nil
}
