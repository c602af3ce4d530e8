// Package spectrum provides a reference implementation of the FFT
// provider the engine consumes frames from: a Hanning window feeding
// gonum's dsp/fourier, reduced to a byte-quantized magnitude spectrum.
// It exists for tests and the demo CLI, not for the core pipeline
// itself, which treats the FFT as an external collaborator and never
// computes a transform directly.
package spectrum

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// MagnitudeProvider is the external FFT collaborator the engine consumes
// pre-computed magnitude spectra from. *Provider below is the reference
// implementation hosts can use in place of their own.
type MagnitudeProvider interface {
	Magnitude(timeDomain []float64) []byte
}

var _ MagnitudeProvider = (*Provider)(nil)

// Provider computes byte-quantized magnitude spectra from time-domain
// frames via windowed FFT.
type Provider struct {
	fftSize int
	window  []float64
	fft     *fourier.FFT

	scratch []float64
}

// New creates a Provider for the given FFT size (must be a power of two).
func New(fftSize int) *Provider {
	window := make([]float64, fftSize)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(fftSize-1)))
	}
	return &Provider{
		fftSize: fftSize,
		window:  window,
		fft:     fourier.NewFFT(fftSize),
	}
}

// Magnitude windows and FFTs a time-domain frame (length fftSize, zero
// padded/truncated as needed) and returns a byte-quantized magnitude
// spectrum of length fftSize/2, normalized against peak, the same shape
// the engine's Frame.MagMain/MagBass expect.
func (p *Provider) Magnitude(timeDomain []float64) []byte {
	if cap(p.scratch) < p.fftSize {
		p.scratch = make([]float64, p.fftSize)
	}
	windowed := p.scratch[:p.fftSize]
	for i := range windowed {
		var s float64
		if i < len(timeDomain) {
			s = timeDomain[i]
		}
		windowed[i] = s * p.window[i]
	}

	coeffs := p.fft.Coefficients(nil, windowed)

	n := p.fftSize / 2
	mag := make([]float64, n)
	peak := 0.0
	for i := 0; i < n; i++ {
		re := real(coeffs[i])
		im := imag(coeffs[i])
		mag[i] = math.Sqrt(re*re + im*im)
		if mag[i] > peak {
			peak = mag[i]
		}
	}

	out := make([]byte, n)
	if peak > 0 {
		for i, v := range mag {
			scaled := v / peak * 255.0
			if scaled > 255 {
				scaled = 255
			}
			out[i] = byte(scaled)
		}
	}
	return out
}
