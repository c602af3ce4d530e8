// Package hysteresis debounces chord labels by a dwell time and maintains
// the append-only timeline of confirmed chord changes.
package hysteresis

import "github.com/chordscope/chordscope/internal/chord"

// Event is a single confirmed chord change on the timeline. Events are
// never mutated except by Override, which sets Overridden and UserText.
type Event struct {
	MediaTimeS float64
	Chord      chord.Label
	Confidence float64
	Overridden bool
	UserText   string
}

// Hysteresis owns the current stable chord, the pending candidate chord,
// the time the candidate started being proposed, and the confirmed-chord
// timeline.
type Hysteresis struct {
	stableMs float64

	lastChord       chord.Label
	hasCandidate    bool
	candidateChord  chord.Label
	candidateSinceMs float64

	events []Event
}

// New creates a Hysteresis with the given dwell time in milliseconds.
// last_chord starts at the sentinel chord.None.
func New(stableMs float64) *Hysteresis {
	return &Hysteresis{
		stableMs:  stableMs,
		lastChord: chord.None,
	}
}

// Update advances the dwell window for this tick's candidate label and
// returns the currently stable label. A newly confirmed event always
// records confidence 1.0 — the hysteresis has just decided the label is
// the stable one, regardless of how close the call was.
func (h *Hysteresis) Update(candidate chord.Label, mediaTimeS, nowMs float64) chord.Label {
	if candidate.Equal(h.lastChord) {
		h.candidateSinceMs = nowMs
		return h.lastChord
	}

	if !h.hasCandidate || !candidate.Equal(h.candidateChord) {
		h.candidateChord = candidate
		h.hasCandidate = true
		h.candidateSinceMs = nowMs
		return h.lastChord
	}

	if nowMs-h.candidateSinceMs >= h.stableMs {
		h.lastChord = h.candidateChord
		if len(h.events) == 0 || !h.events[len(h.events)-1].Chord.Equal(h.lastChord) {
			h.events = append(h.events, Event{
				MediaTimeS: mediaTimeS,
				Chord:      h.lastChord,
				Confidence: 1.0,
			})
		}
	}

	return h.lastChord
}

// Events returns an immutable view of the timeline: a copy, so callers
// cannot mutate the log through the returned slice.
func (h *Hysteresis) Events() []Event {
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// Override sets the overridden flag and user text on events[index]. It is
// the only permitted mutation of a recorded event.
func (h *Hysteresis) Override(index int, text string) error {
	if index < 0 || index >= len(h.events) {
		return ErrIndexOutOfRange
	}
	h.events[index].Overridden = true
	h.events[index].UserText = text
	return nil
}

// Reset clears all state, including the event log, back to construction
// defaults.
func (h *Hysteresis) Reset() {
	h.lastChord = chord.None
	h.hasCandidate = false
	h.candidateChord = chord.Label{}
	h.candidateSinceMs = 0
	h.events = nil
}
