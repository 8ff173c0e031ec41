package discovery

import (
	"github.com/sw33tLie/platescope/pkg/plate"
)

// Generator produces the next candidate plate for a discovery state.
type Generator struct {
	rand          plate.Rand
	maxVariations int
}

func NewGenerator(r plate.Rand, maxVariations int) *Generator {
	return &Generator{rand: r, maxVariations: maxVariations}
}

// Next returns the next plate of the active pattern or, without one, a fresh
// random plate in region (any region when region is 0). The caller advances s.
func (g *Generator) Next(s State, region byte) string {
	if s.Active() && s.VariationsTried < g.maxVariations {
		return plate.Sequential(s.Pattern, s.NextSequence)
	}
	return plate.Random(g.rand, region)
}
