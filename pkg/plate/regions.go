package plate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownRegion = errors.New("unknown region")

// Region is a province and the letter its plates start with.
type Region struct {
	Name string
	Code byte
}

// Regions is the fixed province table. Order matters: menus number regions by position.
var Regions = []Region{
	{"Azuay", 'A'},
	{"Bolívar", 'B'},
	{"Cañar", 'U'},
	{"Carchi", 'C'},
	{"Cotopaxi", 'X'},
	{"Chimborazo", 'H'},
	{"El Oro", 'O'},
	{"Esmeraldas", 'E'},
	{"Galápagos", 'W'},
	{"Guayas", 'G'},
	{"Imbabura", 'I'},
	{"Loja", 'L'},
	{"Los Ríos", 'R'},
	{"Manabí", 'M'},
	{"Morona", 'V'},
	{"Napo", 'N'},
	{"Pastaza", 'S'},
	{"Pichincha", 'P'},
	{"Santa Elena", 'Y'},
	{"Santo Domingo", 'J'},
	{"Sucumbíos", 'K'},
	{"Tungurahua", 'T'},
	{"Zamora", 'Z'},
}

// LookupRegion resolves a region by name (case and accent insensitive) or by its letter.
func LookupRegion(input string) (Region, error) {
	in := strings.TrimSpace(input)
	if len(in) == 1 {
		code := strings.ToUpper(in)[0]
		for _, r := range Regions {
			if r.Code == code {
				return r, nil
			}
		}
	}

	key := foldName(in)
	for _, r := range Regions {
		if foldName(r.Name) == key {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, input)
}

// RegionByCode returns the region whose plates start with code.
func RegionByCode(code byte) (Region, bool) {
	for _, r := range Regions {
		if r.Code == code {
			return r, true
		}
	}
	return Region{}, false
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}
