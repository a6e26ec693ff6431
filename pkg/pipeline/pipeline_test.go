package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridflow/pkg/cache"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"txt", false},
		{"png", false},
		{"svg", false},
		{"dot", false},
		{"invalid", true},
		{"TXT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"txt", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"txt", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Direction != "TB" {
		t.Errorf("Direction should default to TB, got %q", opts.Direction)
	}
	if opts.MaxTextWidth == 0 || opts.MinBoxWidth == 0 {
		t.Error("Box sizing defaults should be set")
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should default to [txt], got %v", opts.Formats)
	}
	if opts.Scale != 2 || opts.FontSize != 16 {
		t.Errorf("Export defaults should be set: scale=%v fontSize=%v", opts.Scale, opts.FontSize)
	}
}

func TestOptionsValidate(t *testing.T) {
	// Lowercase direction is normalized
	opts := Options{Direction: "lr"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Lowercase direction should pass: %v", err)
	}
	if opts.Direction != "LR" {
		t.Errorf("Direction should be uppercased, got %q", opts.Direction)
	}

	// Invalid direction fails
	opts = Options{Direction: "BT"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid direction should fail")
	}

	// Invalid format fails
	opts = Options{Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Invalid format should fail")
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), "A -> B\nB -> C", Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !strings.Contains(result.Text, "A") || !strings.Contains(result.Text, "▼") {
		t.Errorf("diagram text incomplete:\n%s", result.Text)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", result.Stats.EdgeCount)
	}
	if result.DiagramHash == "" {
		t.Error("DiagramHash should be set")
	}

	// Text artifact matches the diagram
	if string(result.Artifacts[FormatText]) != result.Text {
		t.Error("txt artifact should equal diagram text")
	}

	// NullCache never hits
	if result.CacheInfo.DiagramHit || result.CacheInfo.ExportHit {
		t.Error("NullCache should never report cache hits")
	}
}

func TestRunnerExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	ctx := context.Background()
	first, err := runner.Execute(ctx, "A -> B", Options{})
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.DiagramHit {
		t.Error("first run should miss the cache")
	}

	second, err := runner.Execute(ctx, "A -> B", Options{})
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.DiagramHit {
		t.Error("second run should hit the diagram cache")
	}
	if !second.CacheInfo.ExportHit {
		t.Error("second run should hit the artifact cache")
	}
	if second.Text != first.Text {
		t.Error("cached diagram should match the original")
	}

	// Refresh bypasses the cache
	third, err := runner.Execute(ctx, "A -> B", Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if third.CacheInfo.DiagramHit {
		t.Error("refresh run should not report a cache hit")
	}
	if third.Text != first.Text {
		t.Error("refreshed diagram should be identical")
	}
}

func TestRunnerExecuteDifferentOptionsMiss(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(c, nil, quietLogger())
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, "A -> B", Options{}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	// Different generation options must not reuse the cached diagram
	result, err := runner.Execute(ctx, "A -> B", Options{Rounded: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.CacheInfo.DiagramHit {
		t.Error("different options should produce a cache miss")
	}
	if !strings.Contains(result.Text, "╭") {
		t.Errorf("rounded diagram expected:\n%s", result.Text)
	}
}

func TestRunnerExecuteInvalidInput(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	if _, err := runner.Execute(context.Background(), "", Options{}); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := runner.Execute(context.Background(), "A -> B", Options{Direction: "XX"}); err == nil {
		t.Error("invalid direction should fail")
	}
}

func TestExportDOT(t *testing.T) {
	opts := Options{Formats: []string{FormatDOT}}
	opts.SetGenerateDefaults()

	artifacts, err := Export(context.Background(), "A -> B", "unused", opts)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	dot := string(artifacts[FormatDOT])
	if !strings.Contains(dot, `"A" -> "B";`) {
		t.Errorf("DOT artifact missing edge:\n%s", dot)
	}
}

func TestExportPNG(t *testing.T) {
	opts := Options{Formats: []string{FormatPNG}}
	opts.SetGenerateDefaults()

	artifacts, err := Export(context.Background(), "A -> B", "┌───┐\n│ A │\n└───┘", opts)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}

	// PNG magic bytes
	data := artifacts[FormatPNG]
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("png artifact is not a PNG")
	}
}
