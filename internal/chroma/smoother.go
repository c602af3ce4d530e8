package chroma

import "math"

// neighborKernel is the fixed circular-smoothing kernel, centered on each
// pitch class: (prev2, prev1, center, next1, next2).
var neighborKernel = [5]float64{0.10, 0.12, 0.56, 0.12, 0.10}

// Smoother applies circular neighbor smoothing, peak sharpening, and a
// temporal EMA across successive chroma frames. It owns the only
// cross-tick state in the chroma pipeline: the EMA accumulator.
type Smoother struct {
	tauMs float64
	ema   Vector
}

// NewSmoother creates a Smoother with the given temporal time constant in
// milliseconds (clamped to a 10 ms floor).
func NewSmoother(chromaTimeConstantMs float64) *Smoother {
	tau := chromaTimeConstantMs
	if tau < 10 {
		tau = 10
	}
	return &Smoother{tauMs: tau}
}

// Smooth runs the three-stage pipeline and returns the final ChromaVector.
func (s *Smoother) Smooth(raw Vector, dtMs float64) Vector {
	smoothed := circularSmooth(raw)
	sharpened := sharpenPeaks(smoothed)

	alpha := 1 - math.Exp(-dtMs/s.tauMs)
	for k := 0; k < 12; k++ {
		s.ema[k] = (1-alpha)*s.ema[k] + alpha*sharpened[k]
	}
	normalize(s.ema[:])
	return s.ema
}

// Reset clears the temporal EMA, as required by Engine.ResetPlaybackState.
func (s *Smoother) Reset() {
	s.ema = Vector{}
}

// circularSmooth applies the fixed neighbor kernel modulo 12. It is
// shift-invariant across pitch classes: rotating the input rotates the
// output identically.
func circularSmooth(v Vector) Vector {
	var out Vector
	for k := 0; k < 12; k++ {
		var sum float64
		for j, w := range neighborKernel {
			offset := j - 2
			idx := ((k+offset)%12 + 12) % 12
			sum += w * v[idx]
		}
		out[k] = sum
	}
	return out
}

// sharpenPeaks raises each (clamped non-negative) component to the power
// 1.35 and L2-normalizes.
func sharpenPeaks(v Vector) Vector {
	var out Vector
	for k, x := range v {
		if x < 0 {
			x = 0
		}
		out[k] = math.Pow(x, 1.35)
	}
	normalize(out[:])
	return out
}
