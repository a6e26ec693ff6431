package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testCLI() *CLI {
	return New(io.Discard, log.FatalLevel)
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"txt"}},
		{"png", []string{"png"}},
		{"txt,png", []string{"txt", "png"}},
		{"txt, svg , dot", []string{"txt", "svg", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output    string
		inputName string
		want      string
	}{
		{"", "graph.txt", "graph"},
		{"", "flowchart", "flowchart"},
		{"diagram.png", "graph.txt", "diagram"},
		{"diagram.svg", "graph.txt", "diagram"},
		{"out/diagram", "graph.txt", "out/diagram"},
		{"archive.tar", "graph.txt", "archive.tar"},
	}

	for _, tt := range tests {
		got := outputBase(tt.output, tt.inputName)
		if got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.inputName, got, tt.want)
		}
	}
}

func TestGenerateCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(input, []byte("A -> B\nB -> C\n"), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "diagram.txt")

	cmd := testCLI().generateCommand()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{input, "-o", output, "--no-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	text := string(data)
	for _, want := range []string{"A", "B", "C", "▼"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateCommandStdout(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(input, []byte("A -> B\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := testCLI().generateCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{input, "--no-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(out.String(), "A") || !strings.Contains(out.String(), "▼") {
		t.Errorf("stdout missing diagram:\n%s", out.String())
	}
}

func TestGenerateCommandMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(input, []byte("A -> B\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := testCLI().generateCommand()
	cmd.SetOut(io.Discard)
	cmd.SetArgs([]string{input, "-f", "txt,dot", "-o", filepath.Join(dir, "out"), "--no-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	txt, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatalf("read txt artifact: %v", err)
	}
	if !strings.Contains(string(txt), "A") {
		t.Error("txt artifact missing node A")
	}

	dot, err := os.ReadFile(filepath.Join(dir, "out.dot"))
	if err != nil {
		t.Fatalf("read dot artifact: %v", err)
	}
	if !strings.Contains(string(dot), `"A" -> "B";`) {
		t.Errorf("dot artifact missing edge:\n%s", dot)
	}
}

func TestGenerateCommandInvalidInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "graph.txt")
	if err := os.WriteFile(input, []byte("A B C\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := testCLI().generateCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{input, "--no-cache"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for malformed connection list")
	}
}

func TestGenerateCommandMissingFile(t *testing.T) {
	cmd := testCLI().generateCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope.txt"), "--no-cache"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestRootCommand(t *testing.T) {
	root := testCLI().RootCommand()
	if root.Use != "gridflow" {
		t.Errorf("root.Use = %q, want %q", root.Use, "gridflow")
	}

	want := map[string]bool{"generate": false, "serve": false, "cache": false, "completion": false}
	for _, sub := range root.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
