// Package engine orchestrates the analysis pipeline: it owns every
// component's persistent state and threads each tick's buffers through a
// fixed stage order, so no component ever reaches into another's state.
package engine

import (
	"github.com/chordscope/chordscope/internal/bass"
	"github.com/chordscope/chordscope/internal/chord"
	"github.com/chordscope/chordscope/internal/chroma"
	"github.com/chordscope/chordscope/internal/config"
	"github.com/chordscope/chordscope/internal/hpss"
	"github.com/chordscope/chordscope/internal/hysteresis"
	"github.com/chordscope/chordscope/internal/pitch"
	"github.com/chordscope/chordscope/internal/tempo"
	"github.com/chordscope/chordscope/internal/whiten"
)

// Frame is a single tick's input: magnitude spectra from the external FFT
// provider, a time-domain buffer, and the wall-clock and media-time clocks.
type Frame struct {
	MagMain    []byte
	MagBass    []byte
	TimeDomain []float64

	SampleRateHz float64
	WallMs       float64
	MediaTimeS   float64
	IsPlaying    bool
}

// TickResult is returned from every Tick call.
type TickResult struct {
	Chord      string
	Confidence float64
	BPM        float64
	HasBPM     bool
	Chroma     chroma.Vector
}

// Engine owns every component's persistent state and threads frames
// through the pipeline. It is not safe for concurrent use; independent
// tracks need independent Engines.
type Engine struct {
	cfg *config.Config

	whitener     *whiten.Whitener
	bassWhitener *whiten.Whitener
	mask         *hpss.Mask
	mapper       *chroma.Mapper
	smoother     *chroma.Smoother
	bassTracker  *bass.Tracker
	classifier   *chord.Classifier
	hysteresis   *hysteresis.Hysteresis
	bpm          *tempo.Estimator

	hasLastTick bool
	lastWallMs  float64

	lastMainLen int
	lastBassLen int
	lastTimeLen int
}

// New validates cfg and constructs an Engine. The configuration is
// immutable for the lifetime of the engine.
func New(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, wrapConfigErr(err)
	}

	return &Engine{
		cfg:          cfg,
		whitener:     whiten.New(cfg.WhitenHalfWindow, cfg.WhitenEps),
		bassWhitener: whiten.New(cfg.WhitenHalfWindow, cfg.WhitenEps),
		mask:         hpss.New(cfg.HPSSGamma, cfg.HarmonicTimeConstantMs),
		mapper:       chroma.NewMapper(cfg.FMin, cfg.FMax, cfg.ChromaMagGate),
		smoother:     chroma.NewSmoother(cfg.ChromaTimeConstantMs),
		bassTracker:  bass.New(cfg.HPSHarmonics, cfg.BassMinGapBins, cfg.BassPeakGate, float64(cfg.BassStableMs), float64(cfg.BassReleaseMs)),
		classifier:   chord.NewClassifier(cfg.ConfLow, cfg.ConfSpan),
		hysteresis:   hysteresis.New(float64(cfg.ChordStableMs)),
		bpm:          tempo.New(cfg.EnergyHistoryLen, cfg.OnsetStdK, cfg.OnsetRefractoryS, cfg.BPMMin, cfg.BPMMax),
	}, nil
}

// Tick runs one frame through the full pipeline — whiten, mask, map to
// chroma, smooth, track bass, classify, debounce, estimate tempo — and
// returns the tick's result.
func (e *Engine) Tick(f Frame) (TickResult, error) {
	if f.SampleRateHz <= 0 {
		return TickResult{}, ErrInvalidFrame
	}
	if e.hasLastTick && (len(f.MagMain) != e.lastMainLen || len(f.MagBass) != e.lastBassLen || len(f.TimeDomain) != e.lastTimeLen) {
		return TickResult{}, ErrInvalidFrame
	}
	e.lastMainLen = len(f.MagMain)
	e.lastBassLen = len(f.MagBass)
	e.lastTimeLen = len(f.TimeDomain)

	dtMs := 0.0
	if e.hasLastTick {
		dtMs = f.WallMs - e.lastWallMs
		if dtMs < 0 {
			dtMs = 0
		}
	}
	e.lastWallMs = f.WallMs
	e.hasLastTick = true

	whitenedMain := e.whitener.Whiten(f.MagMain)
	mask := e.mask.Update(whitenedMain, dtMs)

	rawChroma := e.mapper.Map(whitenedMain, mask, f.SampleRateHz, e.cfg.FFTSize)
	smoothChroma := e.smoother.Smooth(rawChroma, dtMs)

	// The bass tracker whitens its own (narrower) spectrum independently;
	// it shares no state with the main whitener beyond the algorithm.
	whitenedBass := e.bassWhitener.Whiten(f.MagBass)
	bassPC, hasBass := e.bassTracker.Update(whitenedBass, f.SampleRateHz, e.cfg.FFTSize, e.cfg.BassMinHz, e.cfg.BassMaxHz, f.WallMs)

	var bpc pitch.Class
	if hasBass {
		bpc = bassPC
	}
	candidate, confidence := e.classifier.Classify(smoothChroma, bpc, hasBass)
	if smoothChroma == (chroma.Vector{}) {
		// A zero chroma carries no chord evidence: propose the sentinel
		// instead of the classifier's tie-break winner.
		candidate = chord.None
		confidence = 0
	}
	stable := e.hysteresis.Update(candidate, f.MediaTimeS, f.WallMs)

	bpmVal, hasBPM := e.bpm.Update(f.TimeDomain, f.MediaTimeS)

	return TickResult{
		Chord:      stable.String(),
		Confidence: confidence,
		BPM:        bpmVal,
		HasBPM:     hasBPM,
		Chroma:     smoothChroma,
	}, nil
}

// Events returns an immutable view of the confirmed-chord timeline.
func (e *Engine) Events() []hysteresis.Event {
	return e.hysteresis.Events()
}

// OverrideEvent marks events()[index] as user-overridden with the given
// text. It is the only permitted mutation of a recorded event.
func (e *Engine) OverrideEvent(index int, text string) error {
	return e.hysteresis.Override(index, text)
}

// ResetPlaybackState clears EMAs, bass state, hysteresis, and the event
// log, preserving configuration and scratch buffers.
func (e *Engine) ResetPlaybackState() {
	e.mask.Reset()
	e.smoother.Reset()
	e.bassTracker.Reset()
	e.hysteresis.Reset()
	e.bpm.Reset()
	e.hasLastTick = false
	e.lastMainLen = 0
	e.lastBassLen = 0
	e.lastTimeLen = 0
}
