package chord

import (
	"github.com/chordscope/chordscope/internal/chroma"
	"github.com/chordscope/chordscope/internal/pitch"
)

// Classifier scores a smoothed chroma vector against the constant template
// table and combines the winner with a tracked bass pitch class. It is
// stateless; all persistent state lives in the engine and in
// internal/hysteresis.
type Classifier struct {
	confLow, confSpan float64
}

// NewClassifier creates a Classifier with the confidence-mapping
// parameters confLow and confSpan.
func NewClassifier(confLow, confSpan float64) *Classifier {
	return &Classifier{confLow: confLow, confSpan: confSpan}
}

// Classify picks the argmax cosine similarity against the 72 templates
// (ties broken by iteration order, first wins), maps it to a clamped
// affine confidence, and attaches an optional slash bass.
func (c *Classifier) Classify(v chroma.Vector, bassPC pitch.Class, hasBass bool) (Label, float64) {
	bestIdx := 0
	bestScore := dot(v, templates[0].vec)

	for i := 1; i < len(templates); i++ {
		score := dot(v, templates[i].vec)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	label := templates[bestIdx].label
	if hasBass && bassPC != label.Root {
		label.HasBass = true
		label.Bass = bassPC
	}

	conf := (bestScore - c.confLow) / c.confSpan
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}

	return label, conf
}

func dot(a, b chroma.Vector) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
