package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single", "json", []string{"json"}},
		{"multiple", "svg,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"no output strips input extension", "", "scenes/bench.toml", "scenes/bench"},
		{"output with format extension", "out.svg", "bench.toml", "out"},
		{"output with json extension", "out.json", "bench.toml", "out"},
		{"output without extension", "drawings/bench", "bench.toml", "drawings/bench"},
		{"output with unknown extension", "out.toml", "bench.toml", "out.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}
