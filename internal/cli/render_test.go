package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/planviz/planviz/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"excalidraw"}},
		{"svg", []string{"svg"}},
		{"svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToStdout(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   bool
	}{
		{"-", "plan.txt", true},
		{"", "", true},
		{"", "-", true},
		{"", "plan.txt", false},
		{"out.svg", "", false},
	}

	for _, tt := range tests {
		if got := toStdout(tt.output, tt.input); got != tt.want {
			t.Errorf("toStdout(%q, %q) = %v, want %v", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifactsDerivesPaths(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plan.txt")

	artifacts := map[string][]byte{
		"excalidraw": []byte(`{"type":"excalidraw"}`),
		"dot":        []byte("digraph plan {}"),
	}
	opts := &renderOpts{formats: []string{"excalidraw", "dot"}}

	paths, err := writeArtifacts(context.Background(), artifacts, input, opts)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "plan.dot"),
		filepath.Join(dir, "plan.excalidraw"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}

	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "digraph plan {}" {
		t.Errorf("dot artifact = %q", data)
	}
}

func TestWriteArtifactsExplicitSingleOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.excalidraw")
	artifacts := map[string][]byte{"excalidraw": []byte("{}")}
	opts := &renderOpts{formats: []string{"excalidraw"}, output: out}

	paths, err := writeArtifacts(context.Background(), artifacts, "plan.txt", opts)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Errorf("paths = %v, want [%s]", paths, out)
	}
}

func TestWriteArtifactsRejectsStdoutMultiFormat(t *testing.T) {
	artifacts := map[string][]byte{"svg": nil, "png": nil}
	opts := &renderOpts{formats: []string{"svg", "png"}}

	if _, err := writeArtifacts(context.Background(), artifacts, "-", opts); err == nil {
		t.Error("multiple formats to stdout should fail")
	}
}

func TestRunRenderEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plan.txt")
	planText := "SortExec: expr=[a@0 ASC]\n  DataSourceExec: file_groups={2 groups: [[x], [y]]}, projection=[a@0]\n"
	if err := os.WriteFile(input, []byte(planText), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := &renderOpts{
		formats: []string{pipeline.FormatExcalidraw},
		dialect: pipeline.DefaultDialect,
		noCache: true,
	}
	if err := runRender(context.Background(), input, opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "plan.excalidraw"))
	if err != nil {
		t.Fatalf("expected diagram output: %v", err)
	}
	if len(data) == 0 {
		t.Error("diagram output is empty")
	}
}
