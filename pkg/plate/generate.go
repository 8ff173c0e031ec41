package plate

import (
	"fmt"
	"sort"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Rand is the randomness a generator needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Sequential builds prefix + zero-padded n.
func Sequential(prefix string, n int) string {
	return fmt.Sprintf("%s%04d", prefix, n)
}

// SweepNumber is the i-th suffix of a sweep starting at start. It wraps around
// the 4-digit space, so a sweep of SequenceSpace steps visits every suffix once.
func SweepNumber(start, i int) int {
	return (start + i) % SequenceSpace
}

// Random builds region + two random letters + a random 4-digit suffix.
// A zero region draws one uniformly from Regions.
func Random(r Rand, region byte) string {
	if region == 0 {
		region = Regions[r.IntN(len(Regions))].Code
	}
	a := letters[r.IntN(len(letters))]
	b := letters[r.IntN(len(letters))]
	return fmt.Sprintf("%c%c%c%04d", region, a, b, r.IntN(SequenceSpace))
}

// PrefixCount is a 3-letter prefix and how many known plates share it.
type PrefixCount struct {
	Prefix string
	Count  int
}

// ExtractPrefixes returns the distinct car prefixes found in plates, sorted alphabetically.
func ExtractPrefixes(plates []string) []PrefixCount {
	counts := make(map[string]int)
	for _, p := range plates {
		if len(p) < 3 {
			continue
		}
		prefix, err := ValidatePattern(p[:3])
		if err != nil {
			continue
		}
		counts[prefix]++
	}

	out := make([]PrefixCount, 0, len(counts))
	for prefix, n := range counts {
		out = append(out, PrefixCount{Prefix: prefix, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}
