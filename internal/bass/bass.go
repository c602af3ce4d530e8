// Package bass tracks the bass pitch class via a harmonic product
// spectrum (HPS) on a low-frequency whitened spectrum, debounced by a
// stability window.
package bass

import (
	"math"

	"github.com/chordscope/chordscope/internal/pitch"
)

// Tracker owns the bass pitch-class stability window: current_pc,
// candidate_pc, candidate_since_ms.
type Tracker struct {
	harmonics   int
	minGapBins  int
	peakGate    float64
	stableMs    float64
	releaseMs   float64

	hasCurrent   bool
	currentPC    pitch.Class
	hasCandidate bool
	candidatePC  pitch.Class
	candidateSinceMs float64

	hps []float64 // scratch, reused across calls
}

// New creates a bass Tracker with the given HPS harmonic count, minimum
// gap between bin bounds, peak gate, and stability/release dwell times in
// milliseconds.
func New(harmonics, minGapBins int, peakGate, stableMs, releaseMs float64) *Tracker {
	return &Tracker{
		harmonics:  harmonics,
		minGapBins: minGapBins,
		peakGate:   peakGate,
		stableMs:   stableMs,
		releaseMs:  releaseMs,
	}
}

// Update computes the HPS bass detection for this tick and advances the
// stability window, returning the current stable pitch class (ok=false
// means "none").
func (t *Tracker) Update(whitenedBass []float64, sampleRate float64, fftSize int, bassMinHz, bassMaxHz, wallMs float64) (pitch.Class, bool) {
	detectedPC, detected := t.detect(whitenedBass, sampleRate, fftSize, bassMinHz, bassMaxHz)

	if !detected {
		if t.hasCurrent && wallMs-t.candidateSinceMs > t.releaseMs {
			t.hasCurrent = false
		}
		return t.currentPC, t.hasCurrent
	}

	if t.hasCurrent && detectedPC == t.currentPC {
		t.candidateSinceMs = wallMs
		return t.currentPC, t.hasCurrent
	}

	if !t.hasCandidate || detectedPC != t.candidatePC {
		t.candidatePC = detectedPC
		t.hasCandidate = true
		t.candidateSinceMs = wallMs
		return t.currentPC, t.hasCurrent
	}

	// detected == candidate_pc but != current_pc: promote once stable.
	if wallMs-t.candidateSinceMs >= t.stableMs {
		t.currentPC = t.candidatePC
		t.hasCurrent = true
	}
	return t.currentPC, t.hasCurrent
}

// detect runs the HPS peak search and returns the detected pitch class for
// this tick alone, with no stability logic applied.
func (t *Tracker) detect(whitenedBass []float64, sampleRate float64, fftSize int, bassMinHz, bassMaxHz float64) (pitch.Class, bool) {
	n := len(whitenedBass)
	if n == 0 {
		return 0, false
	}

	binMin := int(math.Floor(bassMinHz * float64(fftSize) / sampleRate))
	if binMin < 1 {
		binMin = 1
	}
	binMax := int(math.Floor(bassMaxHz * float64(fftSize) / sampleRate))
	if binMax > n-1 {
		binMax = n - 1
	}
	if binMax <= binMin+t.minGapBins {
		return 0, false
	}

	if cap(t.hps) < n {
		t.hps = make([]float64, n)
	}
	hps := t.hps[:n]
	copy(hps, whitenedBass)

	for h := 2; h <= t.harmonics; h++ {
		for i := binMin; i*h <= binMax && i < n; i++ {
			v := whitenedBass[i*h]
			if v < 1e-3 {
				v = 1e-3
			}
			hps[i] *= v
		}
	}

	bestI := -1
	bestV := 0.0
	for i := binMin; i <= binMax; i++ {
		if hps[i] > bestV {
			bestV = hps[i]
			bestI = i
		}
	}
	if bestI < 0 || bestV < t.peakGate {
		return 0, false
	}

	freqPerBin := sampleRate / float64(fftSize)
	freq := float64(bestI) * freqPerBin
	return pitch.FromFrequency(freq), true
}

// Reset clears all tracker state, as required by Engine.ResetPlaybackState.
func (t *Tracker) Reset() {
	t.hasCurrent = false
	t.hasCandidate = false
	t.candidateSinceMs = 0
}
