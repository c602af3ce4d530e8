// Package tempo estimates BPM from time-domain frame energy via adaptive
// onset detection against a running mean/stddev threshold and
// inter-onset-interval medians, octave-folded into a target BPM range.
package tempo

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// maxFoldIterations bounds the octave-folding loop so a pathological
// median interval cannot spin indefinitely.
const maxFoldIterations = 8

// onsetHistoryS is how far back onset times are retained.
const onsetHistoryS = 8.0

// Estimator owns the energy ring buffer and onset bookkeeping used to
// derive a BPM estimate from inter-onset intervals.
type Estimator struct {
	historyLen int
	stdK       float64
	refractoryS float64
	bpmMin, bpmMax float64

	energy       []float64
	energyHead   int
	energyCount  int

	onsetTimesS    []float64
	lastOnsetTimeS float64
	hasLastOnset   bool
}

// New creates an Estimator with the ring-buffer length, threshold
// multiplier, refractory period (seconds), and BPM fold bounds from
// config.
func New(historyLen int, stdK, refractoryS, bpmMin, bpmMax float64) *Estimator {
	return &Estimator{
		historyLen:  historyLen,
		stdK:        stdK,
		refractoryS: refractoryS,
		bpmMin:      bpmMin,
		bpmMax:      bpmMax,
		energy:      make([]float64, historyLen),
	}
}

// Update pushes this tick's time-domain energy and returns the current
// BPM estimate, or ok=false if not enough history/onsets exist yet.
func (e *Estimator) Update(timeDomain []float64, mediaTimeS float64) (bpm float64, ok bool) {
	energy := meanSquare(timeDomain)
	e.push(energy)

	if e.energyCount < 20 {
		return 0, false
	}

	mean, std := e.meanStd()
	threshold := mean + e.stdK*std

	if energy > threshold && (!e.hasLastOnset || mediaTimeS-e.lastOnsetTimeS > e.refractoryS) {
		e.onsetTimesS = append(e.onsetTimesS, mediaTimeS)
		e.lastOnsetTimeS = mediaTimeS
		e.hasLastOnset = true
		e.trimOld(mediaTimeS)
	}

	if len(e.onsetTimesS) < 4 {
		return 0, false
	}

	median, ok := e.medianInterval()
	if !ok {
		return 0, false
	}

	bpm = 60.0 / median
	bpm = fold(bpm, e.bpmMin, e.bpmMax)
	return roundToInt(bpm), true
}

func (e *Estimator) push(v float64) {
	e.energy[e.energyHead] = v
	e.energyHead = (e.energyHead + 1) % len(e.energy)
	if e.energyCount < len(e.energy) {
		e.energyCount++
	}
}

func (e *Estimator) meanStd() (mean, std float64) {
	return stat.MeanStdDev(e.energy[:e.energyCount], nil)
}

func (e *Estimator) trimOld(nowS float64) {
	cut := 0
	for cut < len(e.onsetTimesS) && nowS-e.onsetTimesS[cut] > onsetHistoryS {
		cut++
	}
	if cut > 0 {
		e.onsetTimesS = append(e.onsetTimesS[:0], e.onsetTimesS[cut:]...)
	}
}

func (e *Estimator) medianInterval() (float64, bool) {
	n := len(e.onsetTimesS)
	if n < 4 {
		return 0, false
	}
	intervals := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		iv := e.onsetTimesS[i] - e.onsetTimesS[i-1]
		if iv > 0.20 && iv < 2.0 {
			intervals = append(intervals, iv)
		}
	}
	if len(intervals) < 3 {
		return 0, false
	}
	sort.Float64s(intervals)
	mid := len(intervals) / 2
	if len(intervals)%2 == 1 {
		return intervals[mid], true
	}
	return (intervals[mid-1] + intervals[mid]) / 2, true
}

// Reset clears all ring-buffer and onset state, as required by
// Engine.ResetPlaybackState.
func (e *Estimator) Reset() {
	for i := range e.energy {
		e.energy[i] = 0
	}
	e.energyHead = 0
	e.energyCount = 0
	e.onsetTimesS = nil
	e.lastOnsetTimeS = 0
	e.hasLastOnset = false
}

func meanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

func fold(bpm, bpmMin, bpmMax float64) float64 {
	for i := 0; bpm < bpmMin && i < maxFoldIterations; i++ {
		bpm *= 2
	}
	for i := 0; bpm > bpmMax && i < maxFoldIterations; i++ {
		bpm /= 2
	}
	return bpm
}

func roundToInt(v float64) float64 {
	if v < 0 {
		return float64(int(v - 0.5))
	}
	return float64(int(v + 0.5))
}
