// Package pitch provides frequency-to-pitch-class math shared by the
// chroma mapper and the bass tracker.
package pitch

import "math"

// Class is a pitch class in 0..11, indexed from C.
type Class int

// NoteNames gives the byte-exact root name for each pitch class, used by
// the chord classifier when rendering labels.
var NoteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// String renders the pitch class as its note name, or "?" if out of range.
func (c Class) String() string {
	if c < 0 || c > 11 {
		return "?"
	}
	return NoteNames[c]
}

// FromFrequency maps a frequency in Hz to a pitch class via the standard
// 12-TET MIDI formula, A4 = 440 Hz = MIDI 69.
func FromFrequency(freqHz float64) Class {
	midi := 69 + 12*math.Log2(freqHz/440)
	rounded := int(math.Round(midi))
	pc := ((rounded % 12) + 12) % 12
	return Class(pc)
}
