package plate

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"abc123", "ABC0123", true},
		{"abc-1234", "ABC1234", true},
		{"ABC0123", "ABC0123", true},
		{" pbx 4567 ", "PBX4567", true},
		{"jk563y", "JK563Y", true},
		{"ab12", "", false},
		{"abcd123", "", false},
		{"abc12345", "", false},
		{"12abc3", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.ok {
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("Normalize(%q) expected ErrInvalidFormat, got %q, %v", tt.in, got, err)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	inputs := []string{"abc123", "abc-1234", "jk563y", "Xy-9Z", "pqr 0001"}
	for i := 0; i < 200; i++ {
		inputs = append(inputs, Random(r, 0))
	}

	for _, in := range inputs {
		once, err := Normalize(in)
		if err != nil {
			continue
		}
		twice, err := Normalize(once)
		if err != nil || twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q (%v)", in, once, twice, err)
		}
		if !IsCar(once) && !IsMotorcycle(once) {
			t.Fatalf("Normalize(%q) = %q is not canonical", in, once)
		}
	}
}

func TestDecompose(t *testing.T) {
	prefix, n, err := Decompose("PXY0457")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefix != "PXY" || n != 457 {
		t.Fatalf("got %s %d", prefix, n)
	}

	for _, bad := range []string{"JK563Y", "PXY457", "PXY04A7", "pxy0457"} {
		if _, _, err := Decompose(bad); !errors.Is(err, ErrNotCar) {
			t.Fatalf("Decompose(%q) expected ErrNotCar, got %v", bad, err)
		}
	}
}

func TestValidatePattern(t *testing.T) {
	if p, err := ValidatePattern("abc"); err != nil || p != "ABC" {
		t.Fatalf("got %q %v", p, err)
	}
	for _, bad := range []string{"ab", "abcd", "a1c", "ñab", ""} {
		if _, err := ValidatePattern(bad); !errors.Is(err, ErrInvalidPattern) {
			t.Fatalf("ValidatePattern(%q) expected error", bad)
		}
	}
}

func TestSweepNumberWraps(t *testing.T) {
	seen := make(map[int]bool, SequenceSpace)
	for i := 0; i < SequenceSpace; i++ {
		n := SweepNumber(9990, i)
		if n < 0 || n > MaxSequence {
			t.Fatalf("suffix out of range: %d", n)
		}
		if seen[n] {
			t.Fatalf("suffix %d repeated at step %d", n, i)
		}
		seen[n] = true
	}
	if SweepNumber(9999, 1) != 0 {
		t.Fatalf("expected wraparound to 0")
	}
}

func TestRandomUsesRegion(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		p := Random(r, 'G')
		if p[0] != 'G' || !IsCar(p) {
			t.Fatalf("bad random plate %q", p)
		}
	}
	for i := 0; i < 100; i++ {
		p := Random(r, 0)
		if _, ok := RegionByCode(p[0]); !ok {
			t.Fatalf("random plate %q has no known region", p)
		}
	}
}

func TestLookupRegion(t *testing.T) {
	if len(Regions) != 23 {
		t.Fatalf("expected 23 regions, got %d", len(Regions))
	}

	tests := map[string]byte{
		"Pichincha":      'P',
		"bolivar":        'B',
		"LOS RIOS":       'R',
		"Galápagos":      'W',
		"sucumbios":      'K',
		"u":              'U',
		" santa  elena ": 'Y',
	}
	for in, want := range tests {
		r, err := LookupRegion(in)
		if err != nil {
			t.Fatalf("LookupRegion(%q): %v", in, err)
		}
		if r.Code != want {
			t.Fatalf("LookupRegion(%q) = %c, want %c", in, r.Code, want)
		}
	}

	if _, err := LookupRegion("Atlantis"); !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion, got %v", err)
	}
	if _, err := LookupRegion("Q"); !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("expected ErrUnknownRegion for unused letter, got %v", err)
	}
}

func TestExtractPrefixes(t *testing.T) {
	got := ExtractPrefixes([]string{"PBX0001", "ABC1234", "PBX0002", "JK563Y", "AB"})
	want := []PrefixCount{{"ABC", 1}, {"PBX", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}
