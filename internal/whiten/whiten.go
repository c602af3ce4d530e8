// Package whiten implements spectral whitening: normalizing a byte-valued
// magnitude spectrum by its local envelope so stationary tilt is removed
// and localized peaks dominate.
package whiten

// Whitener converts byte-quantized magnitude spectra into locally
// normalized float spectra. It owns only a scratch prefix-sum buffer sized
// to the largest spectrum seen; it carries no state across calls.
type Whitener struct {
	halfWindow int
	eps        float64

	prefix []float64 // scratch, length N+1
	out    []float64 // scratch, length N
}

// New creates a Whitener with the given half-window radius and epsilon.
func New(halfWindow int, eps float64) *Whitener {
	return &Whitener{halfWindow: halfWindow, eps: eps}
}

// Whiten normalizes a byte spectrum (0..255) by its local envelope, square
// and peak-normalize, and returns a float spectrum in [0,1]. The returned
// slice is owned by the Whitener and is overwritten by the next call.
func (w *Whitener) Whiten(bytes []byte) []float64 {
	n := len(bytes)
	w.ensureCapacity(n)

	x := w.out[:n]
	for i, b := range bytes {
		v := float64(b) / 255
		x[i] = v * v
	}

	// Prefix-sum pass so the clamped-window envelope mean is O(1) per bin.
	prefix := w.prefix[:n+1]
	prefix[0] = 0
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + x[i]
	}

	half := w.halfWindow
	var maxY float64
	for i := 0; i < n; i++ {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}
		count := hi - lo + 1
		sum := prefix[hi+1] - prefix[lo]
		env := sum / float64(count)

		y := x[i] / (env + w.eps)
		x[i] = y
		if y > maxY {
			maxY = y
		}
	}

	if maxY > 0 {
		inv := 1 / maxY
		for i := range x {
			x[i] *= inv
		}
	}

	return x
}

func (w *Whitener) ensureCapacity(n int) {
	if cap(w.out) < n {
		w.out = make([]float64, n)
		w.prefix = make([]float64, n+1)
	} else {
		w.out = w.out[:n]
		w.prefix = w.prefix[:n+1]
	}
}
