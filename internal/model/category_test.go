package model

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"musica", CategoryMusic, true},
		{"Música", CategoryMusic, true},
		{"CONCIERTOS", CategoryMusic, true},
		{"gastronomía", CategoryGastronomy, true},
		{"comida", CategoryGastronomy, true},
		{"baile", CategoryDance, true},
		{"astronomia", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryMusic.Label(); got != "Música" {
		t.Errorf("Label() = %q, want Música", got)
	}
	if got := Category("desconocida").Label(); got != "desconocida" {
		t.Errorf("unknown category must fall back to the slug, got %q", got)
	}
}
