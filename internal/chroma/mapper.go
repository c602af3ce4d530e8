package chroma

import (
	"math"

	"github.com/chordscope/chordscope/internal/pitch"
)

// Mapper folds a whitened, mask-weighted spectrum into a ChromaVector. It
// carries no state of its own; the per-frame dependency on sample rate and
// fft size comes from the engine's frame and config.
type Mapper struct {
	fMin, fMax float64
	magGate    float64
}

// NewMapper creates a Mapper restricted to the band [fMin, fMax] Hz, gating
// out bins whose mask-weighted magnitude falls below magGate.
func NewMapper(fMin, fMax, magGate float64) *Mapper {
	return &Mapper{fMin: fMin, fMax: fMax, magGate: magGate}
}

// Map accumulates mag^1.25 per pitch class over the gated, band-limited
// bins, then L2-normalizes. Bin 0 (DC) is always skipped.
func (m *Mapper) Map(whitened, mask []float64, sampleRate float64, fftSize int) Vector {
	var raw Vector
	freqPerBin := sampleRate / float64(fftSize)

	n := len(whitened)
	if len(mask) < n {
		n = len(mask)
	}

	for i := 1; i < n; i++ {
		mag := whitened[i] * mask[i]
		if mag < m.magGate {
			continue
		}
		freq := float64(i) * freqPerBin
		if freq < m.fMin || freq > m.fMax {
			continue
		}
		pc := pitch.FromFrequency(freq)
		raw[pc] += math.Pow(mag, 1.25)
	}

	normalize(raw[:])
	return raw
}
