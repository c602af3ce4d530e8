// Package hpss implements the harmonic/percussive soft mask: a bin-wise
// exponential moving average that separates stationary (harmonic) energy
// from transient (percussive) energy.
package hpss

import "math"

// Mask maintains a per-bin harmonic EMA and emits a soft mask weight in
// [0,1] per bin: large for stationary bins, small for transient spikes.
type Mask struct {
	gamma float64
	tauMs float64

	h   []float64 // harmonic EMA, per bin
	out []float64 // scratch output, reused across calls
}

// New creates a Mask with the given soft-mask exponent and EMA time
// constant in milliseconds (clamped to a 20 ms floor).
func New(gamma, harmonicTimeConstantMs float64) *Mask {
	tau := harmonicTimeConstantMs
	if tau < 20 {
		tau = 20
	}
	return &Mask{gamma: gamma, tauMs: tau}
}

// Update advances the harmonic EMA by dtMs of wall-clock time and returns
// the soft mask for whitened, the current whitened main spectrum. On the
// first call H starts at zero, so the mask is small and rises over
// subsequent calls — this warmup is intentional.
func (m *Mask) Update(whitened []float64, dtMs float64) []float64 {
	n := len(whitened)
	m.ensureCapacity(n)

	alpha := 1 - math.Exp(-dtMs/m.tauMs)

	for i := 0; i < n; i++ {
		x := whitened[i]
		m.h[i] = (1-alpha)*m.h[i] + alpha*x
		h := m.h[i]
		p := x - h
		if p < 0 {
			p = 0
		}
		r := h / (h + p + 1e-6)
		m.out[i] = math.Pow(r, m.gamma)
	}

	return m.out[:n]
}

// Reset zeroes the harmonic EMA in place, discarding accumulated state
// without reallocating the scratch buffers.
func (m *Mask) Reset() {
	for i := range m.h {
		m.h[i] = 0
	}
}

func (m *Mask) ensureCapacity(n int) {
	if cap(m.h) < n {
		grown := make([]float64, n)
		copy(grown, m.h)
		m.h = grown
		m.out = make([]float64, n)
	} else {
		m.h = m.h[:n]
		m.out = m.out[:n]
	}
}
