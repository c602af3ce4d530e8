// Package chord scores a smoothed chroma vector against a fixed set of
// root×quality templates and combines the best match with a tracked bass
// pitch class to produce a chord label.
package chord

import (
	"fmt"

	"github.com/chordscope/chordscope/internal/pitch"
)

// Quality is a chord quality.
type Quality int

// The six recognized qualities, in iteration order — tests depend on this
// order for tie-breaking.
const (
	Major Quality = iota
	Minor
	Maj7
	Min7
	Dom7
	Dim
)

var qualityOrder = [...]Quality{Major, Minor, Maj7, Min7, Dom7, Dim}

// intervals gives the semitone offsets from the root for each quality.
var intervals = map[Quality][]int{
	Major: {0, 4, 7},
	Minor: {0, 3, 7},
	Maj7:  {0, 4, 7, 11},
	Min7:  {0, 3, 7, 10},
	Dom7:  {0, 4, 7, 10},
	Dim:   {0, 3, 6},
}

// suffix gives the byte-exact textual suffix for each quality.
var suffix = map[Quality]string{
	Major: "",
	Minor: "m",
	Maj7:  "maj7",
	Min7:  "m7",
	Dom7:  "7",
	Dim:   "dim",
}

// Sentinel is the byte-exact "no chord known" label, U+2014.
const Sentinel = "—"

// Label identifies a chord by root, quality, and optional slash bass.
type Label struct {
	Root    pitch.Class
	Quality Quality
	HasBass bool
	Bass    pitch.Class
}

// None is the sentinel "no chord known" label.
var None = Label{Root: -1}

// String renders the label as root name, quality suffix, and an optional
// "/bass" suffix when a stable bass differs from the root.
func (l Label) String() string {
	if l.Root < 0 {
		return Sentinel
	}
	s := l.Root.String() + suffix[l.Quality]
	if l.HasBass && l.Bass != l.Root {
		s += "/" + l.Bass.String()
	}
	return s
}

// Equal reports whether two labels denote the same chord (bass included).
func (l Label) Equal(o Label) bool {
	return l == o
}

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Maj7:
		return "maj7"
	case Min7:
		return "min7"
	case Dom7:
		return "dom7"
	case Dim:
		return "dim"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}
