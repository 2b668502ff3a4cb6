package main

import (
	"testing"

	"golang.org/x/tools/go/analysis"
)

func TestFilterAnalyzers(t *testing.T) {
	a := &analysis.Analyzer{Name: "shellexec"}
	b := &analysis.Analyzer{Name: "osexitmain"}
	c := &analysis.Analyzer{Name: "ST1000"}

	tests := []struct {
		name     string
		input    []*analysis.Analyzer
		disabled []string
		expected []string
	}{
		{
			name:     "nothing disabled",
			input:    []*analysis.Analyzer{a, b, c},
			disabled: []string{""},
			expected: []string{"shellexec", "osexitmain", "ST1000"},
		},
		{
			name:     "disabled names are dropped",
			input:    []*analysis.Analyzer{a, b, c},
			disabled: []string{" ST1000", "osexitmain "},
			expected: []string{"shellexec"},
		},
		{
			name:     "nil and duplicate entries",
			input:    []*analysis.Analyzer{a, nil, a, c},
			disabled: nil,
			expected: []string{"shellexec", "ST1000"},
		},
		{
			name:     "empty input",
			input:    []*analysis.Analyzer{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := filterAnalyzers(tt.input, tt.disabled)

			if len(filtered) != len(tt.expected) {
				t.Fatalf("expected %d analyzers, got %d", len(tt.expected), len(filtered))
			}
			for i, a := range filtered {
				if a.Name != tt.expected[i] {
					t.Errorf("analyzer %d: got %s, want %s", i, a.Name, tt.expected[i])
				}
			}
		})
	}
}
