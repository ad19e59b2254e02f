package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,dot", []string{"svg", "pdf", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, fallback, want string
	}{
		{"", "I1", "I1"},
		{"tree.svg", "I1", "tree"},
		{"out/tree.dot", "I1", "out/tree"},
		{"tree.final", "I1", "tree.final"},
		{"tree", "I1", "tree"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.fallback); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.fallback, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "tree")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "dot": []byte("digraph G {}")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "dot", "dot"}, base)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 2 || paths[0] != base+".svg" || paths[1] != base+".dot" {
		t.Errorf("paths = %v", paths)
	}
	data, err := os.ReadFile(base + ".dot")
	if err != nil || string(data) != "digraph G {}" {
		t.Errorf("dot file = %q, %v", data, err)
	}
}
