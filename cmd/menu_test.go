package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestReadMenu(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  menuChoice
	}{
		{"random any region", "1\n0\n5\n", menuChoice{action: actionDiscover, count: 5}},
		{"random pichincha", "1\n18\n3\n", menuChoice{action: actionDiscover, region: 'P', count: 3}},
		{"plate file", "2\nplates.txt\n", menuChoice{action: actionPlates, file: "plates.txt"}},
		{"pattern", "3\npbx\n20\n", menuChoice{action: actionPattern, prefix: "PBX", count: 20}},
		{"pattern file default", "4\n\n7\n", menuChoice{action: actionPatterns, file: defaultPatternsFile, count: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := readMenu(strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadMenuErrors(t *testing.T) {
	for _, input := range []string{"x\n", "9\n", "1\n0\n0\n", "3\nABC\nmany\n", ""} {
		if _, err := readMenu(strings.NewReader(input), &bytes.Buffer{}); err == nil {
			t.Fatalf("expected error for input %q", input)
		}
	}
}

func TestRunMenuBadInputIsNotFatal(t *testing.T) {
	var out bytes.Buffer
	if err := runMenu(context.Background(), strings.NewReader("abc\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), errInvalidNumber.Error()) {
		t.Fatalf("missing message in output: %q", out.String())
	}
}
