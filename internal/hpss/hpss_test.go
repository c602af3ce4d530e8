package hpss

import "testing"

func TestMaskWarmupRises(t *testing.T) {
	m := New(1.8, 110)
	steady := []float64{0.8, 0.8, 0.8, 0.8}

	first := append([]float64(nil), m.Update(steady, 20)...)
	for i := 0; i < 20; i++ {
		m.Update(steady, 20)
	}
	later := append([]float64(nil), m.Update(steady, 20)...)

	for i := range steady {
		if later[i] <= first[i] {
			t.Errorf("bin %d: expected mask to rise with warmup, first=%v later=%v", i, first[i], later[i])
		}
	}
}

func TestMaskSuppressesTransient(t *testing.T) {
	m := New(1.8, 110)
	steady := []float64{0.5, 0.5, 0.5, 0.5}
	for i := 0; i < 30; i++ {
		m.Update(steady, 20)
	}

	transient := []float64{0.9, 0.9, 0.9, 0.9}
	mask := m.Update(transient, 20)

	for i, v := range mask {
		if v > 0.6 {
			t.Errorf("bin %d: expected low mask weight on transient spike, got %v", i, v)
		}
	}
}

func TestMaskStaysInUnitRange(t *testing.T) {
	m := New(1.8, 110)
	for i := 0; i < 50; i++ {
		mask := m.Update([]float64{0.1, 0.9, 0.0, 1.0}, 15)
		for j, v := range mask {
			if v < 0 || v > 1 {
				t.Fatalf("tick %d bin %d: mask %v out of [0,1]", i, j, v)
			}
		}
	}
}
