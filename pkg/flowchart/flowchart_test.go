package flowchart

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridflow/pkg/errors"
)

func TestGenerateSimpleEdge(t *testing.T) {
	out, err := Generate("A -> B")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{"A", "B", "┌", "┘", "▼", "░"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// A sits above B.
	if strings.Index(out, "A") > strings.Index(out, "B") {
		t.Errorf("A should be rendered above B:\n%s", out)
	}
}

func TestGenerateChain(t *testing.T) {
	out, err := Generate("Start -> Middle\nMiddle -> End")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, name := range []string{"Start", "Middle", "End"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing node %q:\n%s", name, out)
		}
	}
	if got := strings.Count(out, "▼"); got != 2 {
		t.Errorf("arrow count = %d, want 2:\n%s", got, out)
	}
}

func TestGenerateCycle(t *testing.T) {
	out, err := Generate("A -> B\nB -> A")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The back edge enters A from the left with a right arrow.
	if !strings.Contains(out, "►") {
		t.Errorf("no back edge arrow in output:\n%s", out)
	}
	if !strings.Contains(out, "▼") {
		t.Errorf("no forward arrow in output:\n%s", out)
	}
}

func TestGenerateSelfLoop(t *testing.T) {
	out, err := Generate("A -> A")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "A") {
		t.Errorf("output missing node:\n%s", out)
	}
}

func TestGenerateFullyCyclic(t *testing.T) {
	// Every node is on the cycle; layout must still terminate with a
	// usable diagram.
	out, err := Generate("A -> B\nB -> C\nC -> A")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, name := range []string{"A", "B", "C"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing node %q:\n%s", name, out)
		}
	}
}

func TestGenerateFanIn(t *testing.T) {
	out, err := Generate("A -> E\nB -> E\nC -> E\nD -> E")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := strings.Count(out, "▼"); got != 4 {
		t.Errorf("arrow count = %d, want 4:\n%s", got, out)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty input", "", errors.ErrCodeInvalidInput},
		{"comments only", "# nothing here\n", errors.ErrCodeInvalidInput},
		{"missing arrow", "A B", errors.ErrCodeInvalidSyntax},
		{"group after edges", "A -> B\n[G: A]", errors.ErrCodeInvalidGroup},
		{"node in two groups", "[G1: A]\n[G2: A]\nA -> B", errors.ErrCodeInvalidGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestGenerateInvalidDirection(t *testing.T) {
	opts := DefaultOptions()
	opts.Direction = "BT"
	if _, err := New(opts); err == nil {
		t.Fatal("expected error for direction BT")
	}
}

func TestGenerateTitle(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "My Flow"
	g, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	d, err := g.Generate("A -> B")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(d.Text, "My Flow") {
		t.Errorf("title missing:\n%s", d.Text)
	}
	for _, glyph := range []string{"╔", "╗", "╚", "╝", "═", "║"} {
		if !strings.Contains(d.Text, glyph) {
			t.Errorf("title frame glyph %s missing:\n%s", glyph, d.Text)
		}
	}
	// Title sits above the boxes.
	if strings.Index(d.Text, "╔") > strings.Index(d.Text, "┌") {
		t.Errorf("title should precede boxes:\n%s", d.Text)
	}
}

func TestGenerateLeftToRight(t *testing.T) {
	opts := DefaultOptions()
	opts.Direction = "LR"
	g, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	d, err := g.Generate("A -> B")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(d.Text, "►") {
		t.Errorf("LR flow should use right arrows:\n%s", d.Text)
	}
	if d.Positions["B"].X <= d.Positions["A"].X {
		t.Errorf("B should be right of A: %v vs %v", d.Positions["B"], d.Positions["A"])
	}
	if d.Positions["B"].Y != d.Positions["A"].Y {
		t.Errorf("single chain should stay on one row: %v vs %v", d.Positions["B"], d.Positions["A"])
	}
}

func TestGenerateRounded(t *testing.T) {
	opts := DefaultOptions()
	opts.Rounded = true
	g, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	d, err := g.Generate("A -> B")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, glyph := range []string{"╭", "╮", "╰", "╯"} {
		if !strings.Contains(d.Text, glyph) {
			t.Errorf("rounded glyph %s missing:\n%s", glyph, d.Text)
		}
	}
}

func TestGenerateNoShadow(t *testing.T) {
	opts := DefaultOptions()
	opts.Shadow = false
	g, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}

	d, err := g.Generate("A -> B")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(d.Text, "░") {
		t.Errorf("shadow glyphs present despite Shadow=false:\n%s", d.Text)
	}
}

func TestGenerateGroups(t *testing.T) {
	out, err := Generate("[Backend: API DB]\nAPI -> DB\nClient -> API")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "Backend") {
		t.Errorf("group label missing:\n%s", out)
	}
	if !strings.Contains(out, ".") {
		t.Errorf("dotted group border missing:\n%s", out)
	}
}

func TestGenerateEdgeCrossesGroupLabel(t *testing.T) {
	// The back edge from DB to Client travels the left margin, and the
	// group label sits in the channel above its member boxes. Neither may
	// abort generation; the label text stays intact and the line resumes
	// past it.
	out, err := Generate("[Backend: API DB]\nClient -> API\nAPI -> DB\nDB -> Client")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "Backend") {
		t.Errorf("group label missing or clobbered:\n%s", out)
	}
	if !strings.Contains(out, "►") {
		t.Errorf("back edge arrow missing:\n%s", out)
	}
	if !strings.Contains(out, "▼") {
		t.Errorf("forward arrow missing:\n%s", out)
	}
}

func TestGenerateBackEdgeCrossesTallSiblingLabel(t *testing.T) {
	// A back edge exits across its layer toward the margin; a sibling with
	// a taller wrapped label puts text in the exit run's row.
	input := "Start -> A Very Long Node Name That Wraps Onto Several Rows\n" +
		"Start -> Loop\n" +
		"Loop -> Start"
	out, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(out, "Wraps") {
		t.Errorf("wrapped label missing or clobbered:\n%s", out)
	}
	if !strings.Contains(out, "►") && !strings.Contains(out, "▼") {
		t.Errorf("no arrows in output:\n%s", out)
	}
}

func TestGeneratePositionsMatchOutput(t *testing.T) {
	g, err := New(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	d, err := g.Generate("A -> B\nA -> C")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	lines := strings.Split(d.Text, "\n")
	for id, p := range d.Positions {
		if p.Y >= len(lines) {
			t.Fatalf("position of %q outside output: %v", id, p)
		}
		row := []rune(lines[p.Y])
		if p.X >= len(row) || row[p.X] != '┌' {
			t.Errorf("no box corner for %q at %v:\n%s", id, p, d.Text)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	const input = "A -> B\nA -> C\nB -> D\nC -> D\nD -> A"
	first, err := Generate(input)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for range 5 {
		out, err := Generate(input)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if out != first {
			t.Fatalf("output changed between runs:\n%s\n---\n%s", first, out)
		}
	}
}

func TestGenerateNoTrailingWhitespace(t *testing.T) {
	out, err := Generate("A -> B")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, line := range strings.Split(out, "\n") {
		if strings.TrimRight(line, " ") != line {
			t.Errorf("line %d has trailing spaces: %q", i, line)
		}
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("output ends with a blank line")
	}
}
