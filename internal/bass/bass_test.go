package bass

import (
	"math"
	"testing"
)

const (
	sr      = 44100.0
	fftSize = 4096
)

// spectrumWithPeak builds a whitened-bass-style spectrum with a strong
// fundamental at freqHz and its harmonics up to hpsHarmonics, so the HPS
// peak search finds a clean fundamental.
func spectrumWithPeak(n int, freqHz float64, harmonics int) []float64 {
	spec := make([]float64, n)
	for i := range spec {
		spec[i] = 0.01
	}
	binForFreq := func(f float64) int {
		return int(math.Round(f * fftSize / sr))
	}
	for h := 1; h <= harmonics; h++ {
		b := binForFreq(freqHz * float64(h))
		if b > 0 && b < n {
			spec[b] = 1.0
		}
	}
	return spec
}

func TestDetectFindsFundamental(t *testing.T) {
	tr := New(4, 8, 0.02, 280, 900)
	spec := spectrumWithPeak(2048, 98.0, 4) // G2 ~ 98 Hz
	pc, ok := tr.detect(spec, sr, fftSize, 30, 280)
	if !ok {
		t.Fatal("expected a bass detection")
	}
	if pc.String() != "G" {
		t.Errorf("expected G, got %s", pc.String())
	}
}

func TestDetectNoneOnNarrowBand(t *testing.T) {
	tr := New(4, 8, 0.02, 280, 900)
	spec := make([]float64, 10) // far too short for a real band
	_, ok := tr.detect(spec, sr, fftSize, 30, 280)
	if ok {
		t.Error("expected no detection on a too-narrow band")
	}
}

func TestStabilityRequiresDwell(t *testing.T) {
	tr := New(4, 8, 0.02, 280, 900)
	spec := spectrumWithPeak(2048, 98.0, 4)

	pc, ok := tr.Update(spec, sr, fftSize, 30, 280, 0)
	if ok {
		t.Fatalf("expected no current pc before dwell elapses, got %s", pc)
	}

	pc, ok = tr.Update(spec, sr, fftSize, 30, 280, 279)
	if ok {
		t.Fatalf("expected no promotion just before stableMs, got %s", pc)
	}

	pc, ok = tr.Update(spec, sr, fftSize, 30, 280, 280)
	if !ok || pc.String() != "G" {
		t.Fatalf("expected G promoted at stableMs, got %v ok=%v", pc, ok)
	}
}

func TestReleaseClearsCurrentAfterMissingDetections(t *testing.T) {
	tr := New(4, 8, 0.02, 280, 900)
	spec := spectrumWithPeak(2048, 98.0, 4)

	tr.Update(spec, sr, fftSize, 30, 280, 0)
	tr.Update(spec, sr, fftSize, 30, 280, 280)

	silence := make([]float64, 2048)
	for i := range silence {
		silence[i] = 0.01
	}

	_, ok := tr.Update(silence, sr, fftSize, 30, 280, 280+500)
	if !ok {
		t.Fatal("expected current pc to survive within the release window")
	}

	_, ok = tr.Update(silence, sr, fftSize, 30, 280, 280+901)
	if ok {
		t.Error("expected current pc released after bassReleaseMs of silence")
	}
}

func TestReset(t *testing.T) {
	tr := New(4, 8, 0.02, 280, 900)
	spec := spectrumWithPeak(2048, 98.0, 4)
	tr.Update(spec, sr, fftSize, 30, 280, 0)
	tr.Update(spec, sr, fftSize, 30, 280, 280)

	tr.Reset()
	_, ok := tr.Update(make([]float64, 2048), sr, fftSize, 30, 280, 1000000)
	if ok {
		t.Error("expected no current pc right after Reset")
	}
}
