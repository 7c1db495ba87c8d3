package utils

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mañana", "manana"},
		{"MÚSICA", "musica"},
		{"  Año Nuevo  ", "ano nuevo"},
		{"sin acentos", "sin acentos"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.input); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("descripción", 6); got != "descri" {
		t.Errorf("TruncateRunes = %q, want %q", got, "descri")
	}
	if got := TruncateRunes("corto", 10); got != "corto" {
		t.Errorf("TruncateRunes must not touch short strings, got %q", got)
	}
}
