package chord

import (
	"math"

	"github.com/chordscope/chordscope/internal/chroma"
	"github.com/chordscope/chordscope/internal/pitch"
)

// template pairs a constant L2-normalized chroma template with the label
// it represents.
type template struct {
	label Label
	vec   chroma.Vector
}

// templates holds all 72 root×quality templates in root-major, then
// quality-minor iteration order (root 0..11, each with qualityOrder),
// stored contiguously so scoring is a tight inner loop of 12-element dot
// products.
var templates = buildTemplates()

func buildTemplates() []template {
	out := make([]template, 0, 12*len(qualityOrder))
	for root := 0; root < 12; root++ {
		for _, q := range qualityOrder {
			var v chroma.Vector
			for _, interval := range intervals[q] {
				pc := (root + interval) % 12
				v[pc] = 1.0
			}

			var norm float64
			for _, x := range v {
				norm += x * x
			}
			if norm > 0 {
				inv := 1 / math.Sqrt(norm)
				for i := range v {
					v[i] *= inv
				}
			}

			out = append(out, template{
				label: Label{Root: pitch.Class(root), Quality: q},
				vec:   v,
			})
		}
	}
	return out
}
