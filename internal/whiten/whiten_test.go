package whiten

import "testing"

func TestWhitenFlatInputApproachesOne(t *testing.T) {
	w := New(25, 1e-6)
	bytes := make([]byte, 200)
	for i := range bytes {
		bytes[i] = 128
	}

	out := w.Whiten(bytes)
	for i, v := range out {
		if v < 1-1e-3 {
			t.Fatalf("bin %d: expected whitened value near 1.0, got %v", i, v)
		}
	}
}

func TestWhitenOutputInUnitRange(t *testing.T) {
	w := New(25, 1e-6)
	bytes := make([]byte, 500)
	for i := range bytes {
		bytes[i] = byte((i * 37) % 256)
	}
	bytes[250] = 255

	out := w.Whiten(bytes)
	for i, v := range out {
		if v < 0 || v > 1+1e-9 {
			t.Errorf("bin %d: whitened value %v out of [0,1]", i, v)
		}
	}
}

func TestWhitenLocalizedPeakSurvives(t *testing.T) {
	w := New(10, 1e-6)
	bytes := make([]byte, 100)
	for i := range bytes {
		bytes[i] = 20 // low broadband floor
	}
	bytes[50] = 255 // sharp localized peak

	out := w.Whiten(bytes)
	if out[50] <= out[10] {
		t.Errorf("expected peak bin to dominate: peak=%v floor=%v", out[50], out[10])
	}
}

func TestWhitenZeroInputStaysZero(t *testing.T) {
	w := New(25, 1e-6)
	bytes := make([]byte, 50)
	out := w.Whiten(bytes)
	for i, v := range out {
		if v != 0 {
			t.Errorf("bin %d: expected 0 for all-zero input, got %v", i, v)
		}
	}
}

func TestWhitenReusesScratchAcrossSizes(t *testing.T) {
	w := New(5, 1e-6)
	small := make([]byte, 10)
	large := make([]byte, 1000)
	for i := range large {
		large[i] = byte(i % 256)
	}

	_ = w.Whiten(small)
	out := w.Whiten(large)
	if len(out) != len(large) {
		t.Fatalf("expected output length %d, got %d", len(large), len(out))
	}
}
