package planner

import (
	"errors"
	"testing"
)

func TestParseLayout(t *testing.T) {
	g := mustLayout(t, `
		S.#
		.##
		..G`)

	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("Expected 3x3, got %dx%d", g.Rows(), g.Cols())
	}
	if g.Start() != (Cell{0, 0}) || g.Goal() != (Cell{2, 2}) {
		t.Errorf("Expected start (0,0) goal (2,2), got %v %v", g.Start(), g.Goal())
	}
	want := []Cell{{0, 2}, {1, 1}, {1, 2}}
	got := g.BlockedCells()
	if len(got) != len(want) {
		t.Fatalf("Expected walls %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected walls %v, got %v", want, got)
			break
		}
	}
}

func TestParseLayout_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layout string
	}{
		{"empty", "\n\n"},
		{"ragged rows", "S..\n..\n..G"},
		{"missing goal", "S..\n..."},
		{"two starts", "S.S\n..G"},
		{"unknown character", "S.x\n..G"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseLayout(tt.layout); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestFormatLayout(t *testing.T) {
	g := mustLayout(t, `
S..
##.
G..`)

	res, err := Search(g, g.Start(), g.Goal())
	if err != nil {
		t.Fatal(err)
	}
	want := "S**\n##*\nG**\n"
	if got := FormatLayout(g, res.Path); got != want {
		t.Errorf("Expected\n%s\ngot\n%s", want, got)
	}

	// Path marks are ignored when parsed back.
	again := mustLayout(t, FormatLayout(g, res.Path))
	if FormatLayout(again, nil) != "S..\n##.\nG..\n" {
		t.Errorf("Expected round trip without path, got\n%s", FormatLayout(again, nil))
	}
}
